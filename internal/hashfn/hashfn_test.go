package hashfn

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad literal %q", s)
	return v
}

func TestKnownDigests(t *testing.T) {
	tests := []struct {
		function string
		key      string
		want     string
	}{
		{"alphabetical", "", "0"},
		{"alphabetical", "foo", "71949"},
		{"alphabetical", "bar", "68884"},
		{"alphabetical", "Paris", "38342861"},
		{"alphabetical-first-4", "foo", "71949"},
		{"alphabetical-first-4", "Paris", "1474721"},
		{"mod31", "a", "97"},
		{"mod31", "foo", "101574"},
		{"mod31", "Paris", "76884331"},
		{"adler32", "", "0"},
		{"adler32", "a", "6357089"},
		{"adler32", "foo", "41877828"},
		{"adler32", "Paris", "95355391"},
		{"djb2", "", "5381"},
		{"djb2", "a", "177670"},
		{"djb2", "foo", "193491849"},
		{"djb2", "Paris", "210686037028"},
		{"fnv1a", "a", "97"},
		{"fnv1a", "foo", "478598922488235279994"},
		{"fnv1a", "Paris", "1761298953949387889162985440308523346113"},
		{"sdbm", "a", "97"},
		{"sdbm", "foo", "438936619302"},
		{"sdbm", "Paris", "1481449631479140108907"},
		{"m31s", "a", "32"},
		{"m31s", "foo", "37029"},
		{"m31s", "Paris", "14854506"},
		{"m32", "bar", "34865"},
		{"m32", "Paris", "16828722"},
		{"rshash", "a", "28607337"},
		{"rshash", "foo", "2288225990884977"},
		{"rshash", "Paris", "2247559687835448989"},
	}

	for _, tt := range tests {
		t.Run(tt.function+"/"+tt.key, func(t *testing.T) {
			f, err := Lookup(tt.function)
			require.NoError(t, err)
			assert.Equal(t, 0, mustBig(t, tt.want).Cmp(f.Sum(tt.key)), "got %s", f.Sum(tt.key))
		})
	}
}

func TestDigestsAreDeterministicAndNonNegative(t *testing.T) {
	keys := []string{"", "a", "Paris", "São Paulo", "Zürich", "Reykjavík", "東京"}

	for _, f := range All() {
		t.Run(f.Name, func(t *testing.T) {
			for _, key := range keys {
				first := f.Sum(key)
				second := f.Sum(key)
				assert.Equal(t, 0, first.Cmp(second), "%s(%q) not deterministic", f.Name, key)
				assert.GreaterOrEqual(t, first.Sign(), 0, "%s(%q) negative", f.Name, key)
			}
		})
	}
}

func TestSumReturnsFreshValue(t *testing.T) {
	for _, f := range All() {
		want := new(big.Int).Set(f.Sum("Paris"))
		f.Sum("Paris").SetInt64(-1)
		assert.Equal(t, 0, want.Cmp(f.Sum("Paris")), f.Name)
	}
}

func TestFixedWidthDigestsFitWidth(t *testing.T) {
	for _, f := range All() {
		if f.Width == 0 {
			continue
		}
		assert.LessOrEqual(t, f.Sum("Llanfairpwllgwyngyll").BitLen(), f.Width, f.Name)
	}
}

func TestAlphabeticalFirst4Truncates(t *testing.T) {
	first4, err := Lookup("alphabetical-first-4")
	require.NoError(t, err)
	full, err := Lookup("alphabetical")
	require.NoError(t, err)

	assert.Equal(t, 0, first4.Sum("Pari").Cmp(first4.Sum("Paris")))
	assert.Equal(t, 0, first4.Sum("Pari").Cmp(full.Sum("Pari")))
	assert.Equal(t, 0, first4.Sum("ab").Cmp(full.Sum("ab")))
	assert.NotEqual(t, 0, full.Sum("Pari").Cmp(full.Sum("Paris")))
}

func TestNormativeDigestsUseCodePoints(t *testing.T) {
	f, err := Lookup("mod31")
	require.NoError(t, err)

	// 'é' is one code point (233) but two UTF-8 bytes
	assert.Equal(t, int64(233), f.Sum("é").Int64())
}

func TestUnboundedArithmetic(t *testing.T) {
	f, err := Lookup("sdbm")
	require.NoError(t, err)

	long := "Llanfairpwllgwyngyllgogerychwyrndrobwllllantysiliogogogoch"
	assert.Greater(t, f.Sum(long).BitLen(), 64)
}

func TestCatalogOrder(t *testing.T) {
	assert.Equal(t, []string{
		"alphabetical", "alphabetical-first-4", "mod31", "adler32",
		"djb2", "fnv1a", "sdbm", "baseline",
	}, Names(Default()))

	assert.Equal(t, []string{
		"m31s", "m32", "mz", "rshash", "murmur3", "metro64",
		"xxhash64", "highway64", "blake3",
	}, Names(Extended()))

	assert.Len(t, All(), len(Default())+len(Extended()))
}

func TestBaselineIsNotNormative(t *testing.T) {
	f, err := Lookup("baseline")
	require.NoError(t, err)
	assert.False(t, f.Normative)

	for _, g := range All() {
		if g.Name != "baseline" {
			assert.True(t, g.Normative, g.Name)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical", input: "djb2", want: "djb2"},
		{name: "alias", input: "m31", want: "mod31"},
		{name: "underscore alias", input: "alphabetical_first_4", want: "alphabetical-first-4"},
		{name: "variant alias", input: "fnv1a-variant", want: "fnv1a"},
		{name: "platform alias", input: "platform-default", want: "baseline"},
		{name: "case and space", input: "  SDBM ", want: "sdbm"},
		{name: "unknown", input: "crc32", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Lookup(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownHash))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Name)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("preserves caller order", func(t *testing.T) {
		fns, err := Resolve([]string{"sdbm", "alphabetical", "murmur3"})
		require.NoError(t, err)
		assert.Equal(t, []string{"sdbm", "alphabetical", "murmur3"}, Names(fns))
	})

	t.Run("rejects duplicates through aliases", func(t *testing.T) {
		_, err := Resolve([]string{"mod31", "m31"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateHash))
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := Resolve([]string{"djb2", "nope"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownHash))
	})
}

func TestSelect(t *testing.T) {
	fns, err := Select(nil, false)
	require.NoError(t, err)
	assert.Equal(t, Names(Default()), Names(fns))

	fns, err = Select(nil, true)
	require.NoError(t, err)
	assert.Equal(t, Names(All()), Names(fns))

	fns, err = Select([]string{"blake3"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"blake3"}, Names(fns))
}

func TestAllReturnsCopy(t *testing.T) {
	fns := All()
	fns[0].Name = "changed"
	assert.Equal(t, "alphabetical", All()[0].Name)
}

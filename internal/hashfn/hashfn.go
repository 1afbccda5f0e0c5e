// Package hashfn provides the catalog of string digest functions evaluated by
// hashscan.
//
// Every function maps a string to a non-negative integer digest. Normative
// functions use unbounded-precision arithmetic so that digests keep growing
// with the length of the key; only the capacity reduction bounds them.
// Functions with a non-zero Width define their own fixed-width wraparound.
package hashfn

import (
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrUnknownHash   = fmt.Errorf("unknown hash function")
	ErrDuplicateHash = fmt.Errorf("hash function selected more than once")
)

// Func is a named, pure string digest function
type Func struct {
	// Name is the canonical catalog name
	Name string

	// Aliases are alternative names accepted by Lookup
	Aliases []string

	// Description is a one-line summary of the recurrence
	Description string

	// Width is the wraparound width in bits, 0 for unbounded digests
	Width int

	// Normative is false for digests whose value is not reproducible across implementations
	Normative bool

	// Extended marks functions outside the default evaluation set
	Extended bool

	sum func(key string) *big.Int
}

// Sum returns the digest of key. The returned value is owned by the caller.
func (f Func) Sum(key string) *big.Int {
	return f.sum(key)
}

// String implements fmt.Stringer
func (f Func) String() string {
	return f.Name
}

// catalog lists every function in evaluation order. The default set comes
// first; its order is the tie-break order of the ranking.
var catalog = []Func{
	{
		Name:        "alphabetical",
		Description: "h = h*26 + ord(ch)",
		Normative:   true,
		sum:         polynomial(0, 26, 0),
	},
	{
		Name:        "alphabetical-first-4",
		Aliases:     []string{"alphabetical_first_4"},
		Description: "h = h*26 + ord(ch) over the first 4 characters",
		Normative:   true,
		sum:         polynomial(0, 26, 4),
	},
	{
		Name:        "mod31",
		Aliases:     []string{"m31"},
		Description: "h = h*31 + ord(ch)",
		Normative:   true,
		sum:         polynomial(0, 31, 0),
	},
	{
		Name:        "adler32",
		Aliases:     []string{"adler32-variant"},
		Description: "(h2 << 16) | h1 with both running sums mod 65521",
		Normative:   true,
		sum:         adler32,
	},
	{
		Name:        "djb2",
		Description: "seed 5381; h = (h << 5) + h + ord(ch)",
		Normative:   true,
		sum:         djb2,
	},
	{
		Name:        "fnv1a",
		Aliases:     []string{"fnv1a-variant"},
		Description: "h = (h * 0x811C9DC5) XOR ord(ch)",
		Normative:   true,
		sum:         fnv1aVariant,
	},
	{
		Name:        "sdbm",
		Description: "h = ord(ch) + (h << 6) + (h << 16) - h",
		Normative:   true,
		sum:         sdbm,
	},
	{
		Name:        "baseline",
		Aliases:     []string{"platform-default", "hash"},
		Description: "FNV-1a 64 over UTF-8 bytes (non-normative baseline)",
		Width:       64,
		sum:         baseline,
	},
	{
		Name:        "m31s",
		Description: "h = h*31 + (byte - 'A')",
		Width:       64,
		Normative:   true,
		Extended:    true,
		sum:         fixedPolynomial(31, 'A'),
	},
	{
		Name:        "m32",
		Description: "h = h*32 + (byte - 'A')",
		Width:       64,
		Normative:   true,
		Extended:    true,
		sum:         fixedPolynomial(32, 'A'),
	},
	{
		Name:        "mz",
		Description: "h = h*'z' + (byte - 'A')",
		Width:       64,
		Normative:   true,
		Extended:    true,
		sum:         fixedPolynomial('z', 'A'),
	},
	{
		Name:        "rshash",
		Description: "shift-add accumulation with a final avalanche",
		Width:       64,
		Normative:   true,
		Extended:    true,
		sum:         rshash,
	},
	{
		Name:        "murmur3",
		Description: "MurmurHash3 x64, low 64 bits",
		Width:       64,
		Normative:   true,
		Extended:    true,
		sum:         murmur3Sum,
	},
	{
		Name:        "metro64",
		Description: "MetroHash64, seed 0",
		Width:       64,
		Normative:   true,
		Extended:    true,
		sum:         metroSum,
	},
	{
		Name:        "xxhash64",
		Description: "xxHash64, seed 0",
		Width:       64,
		Normative:   true,
		Extended:    true,
		sum:         xxhashSum,
	},
	{
		Name:        "highway64",
		Description: "HighwayHash-64 with an all-zero key",
		Width:       64,
		Normative:   true,
		Extended:    true,
		sum:         highwaySum,
	},
	{
		Name:        "blake3",
		Description: "BLAKE3-256 digest read as a big-endian integer",
		Width:       256,
		Normative:   true,
		Extended:    true,
		sum:         blake3Sum,
	},
}

// All returns every catalog function in evaluation order
func All() []Func {
	out := make([]Func, len(catalog))
	copy(out, catalog)
	return out
}

// Default returns the default evaluation set
func Default() []Func {
	return filter(func(f Func) bool { return !f.Extended })
}

// Extended returns the functions outside the default set
func Extended() []Func {
	return filter(func(f Func) bool { return f.Extended })
}

func filter(keep func(Func) bool) []Func {
	var out []Func
	for _, f := range catalog {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// Lookup finds a function by canonical name or alias, case-insensitively
func Lookup(name string) (Func, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, f := range catalog {
		if f.Name == want {
			return f, nil
		}
		for _, alias := range f.Aliases {
			if alias == want {
				return f, nil
			}
		}
	}
	return Func{}, fmt.Errorf("%w: %q", ErrUnknownHash, name)
}

// Resolve looks up names in the given order. Unknown names and names that
// resolve to an already selected function are rejected.
func Resolve(names []string) ([]Func, error) {
	out := make([]Func, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		f, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateHash, f.Name)
		}
		seen[f.Name] = true
		out = append(out, f)
	}
	return out, nil
}

// Select returns the functions named by names, or the default set (plus the
// extended set when extended is true) when names is empty.
func Select(names []string, extended bool) ([]Func, error) {
	if len(names) > 0 {
		return Resolve(names)
	}
	if extended {
		return All(), nil
	}
	return Default(), nil
}

// Names returns the canonical names of fns
func Names(fns []Func) []string {
	names := make([]string, len(fns))
	for i, f := range fns {
		names[i] = f.Name
	}
	return names
}

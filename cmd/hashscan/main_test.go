package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/config"
	"github.com/ludo-technologies/hashscan/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree with args and returns stdout and stderr
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CI", "true")

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// corpusDir writes a corpus file and a config pointing reports into the temp dir
func corpusDir(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	corpus := filepath.Join(dir, "keys.txt")
	require.NoError(t, os.WriteFile(corpus, []byte(content), 0o644))

	reports := filepath.Join(dir, "reports")
	cfg := "[output]\ndirectory = \"" + filepath.ToSlash(reports) + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.TomlConfigFileName), []byte(cfg), 0o644))
	return corpus, reports
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCLI(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Short()+"\n", stdout)

	stdout, _, err = runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "hashscan "+version.Short())
}

func TestRankText(t *testing.T) {
	corpus, _ := corpusDir(t, "foo\nbar\n")

	stdout, _, err := runCLI(t, "", "rank", "--hash", "alphabetical", "--capacity", "4", corpus)
	require.NoError(t, err)
	assert.Equal(t, "alphabetical 4: 0.00\n", stdout)
}

func TestRankDuplicatesAndDedupe(t *testing.T) {
	corpus, _ := corpusDir(t, "paris\nparis\n")

	stdout, _, err := runCLI(t, "", "rank", "--hash", "djb2", "--capacity", "7", corpus)
	require.NoError(t, err)
	assert.Equal(t, "djb2 7: 0.50\n", stdout)

	stdout, _, err = runCLI(t, "", "rank", "--hash", "djb2", "--capacity", "7", "--dedupe", corpus)
	require.NoError(t, err)
	assert.Equal(t, "djb2 7: 0.00\n", stdout)
}

func TestRankBuiltinCorpusTop(t *testing.T) {
	stdout, _, err := runCLI(t, "", "rank", "--top", "3", "--prime-count", "10", "--min-power", "9", "--max-power", "10")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.Regexp(t, `^[a-z0-9-]+ \d+: \d\.\d\d$`, line)
	}
}

func TestRankJSONReport(t *testing.T) {
	corpus, reports := corpusDir(t, "foo\nbar\nbaz\n")

	stdout, stderr, err := runCLI(t, "", "rank", "--json", "--mode", "all", "--hash", "alphabetical,djb2", "--capacity", "4", "--capacity", "5", corpus)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "JSON report generated: ")

	files, err := filepath.Glob(filepath.Join(reports, "rank_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)

	var response domain.CollisionResponse
	require.NoError(t, json.Unmarshal(data, &response))
	require.Len(t, response.Results, 4)
	assert.Equal(t, "alphabetical", response.Results[0].Function)
	assert.Equal(t, int64(5), response.Results[1].Capacity)
	assert.Equal(t, []string{corpus}, response.CorpusSources)
}

func TestRankInvalidMode(t *testing.T) {
	_, _, err := runCLI(t, "", "rank", "--mode", "best")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
}

func TestRankConflictingFormats(t *testing.T) {
	_, _, err := runCLI(t, "", "rank", "--json", "--csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one output format flag")
}

func TestEval(t *testing.T) {
	corpus, _ := corpusDir(t, "a\nb\nc\nd\n")

	stdout, _, err := runCLI(t, "", "eval", "djb2", "--capacity", "1", "--capacity", "0", corpus)
	require.NoError(t, err)
	assert.Equal(t, "djb2 1: 0.75\ndjb2 0: 0.75\n", stdout)

	_, _, err = runCLI(t, "", "eval", "crc32")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
}

func TestDigest(t *testing.T) {
	stdout, _, err := runCLI(t, "", "digest", "--hash", "alphabetical", "foo", "bar")
	require.NoError(t, err)
	assert.Equal(t, "alphabetical foo: 71949\nalphabetical bar: 68884\n", stdout)

	stdout, _, err = runCLI(t, "Paris\n", "digest", "--hash", "alphabetical-first-4")
	require.NoError(t, err)
	assert.Equal(t, "alphabetical-first-4 Paris: 1474721\n", stdout)

	stdout, _, err = runCLI(t, "", "digest", "--json", "--hash", "djb2", "a")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"decimal": "177670"`)
}

func TestHashes(t *testing.T) {
	stdout, _, err := runCLI(t, "", "hashes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "alphabetical")
	assert.Contains(t, stdout, "blake3")
	assert.Contains(t, stdout, "(non-normative)")

	stdout, _, err = runCLI(t, "", "hashes", "--json")
	require.NoError(t, err)
	var entries []catalogEntry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	assert.Equal(t, "alphabetical", entries[0].Name)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", config.TomlConfigFileName)

	stdout, _, err := runCLI(t, "", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration file created")

	cfg, err := config.NewTomlConfigLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, _, err = runCLI(t, "", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runCLI(t, "", "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, domain.NewInvalidInputError("corpus is empty", nil))
	assert.Contains(t, buf.String(), "Error: [INVALID_INPUT] corpus is empty")
	assert.Contains(t, buf.String(), "Suggestions:")

	buf.Reset()
	reportError(&buf, errors.New("boom"))
	assert.NotContains(t, buf.String(), "Suggestions:")
}

func TestGenerateTimestampedFileName(t *testing.T) {
	name := generateTimestampedFileName("rank", "json")
	assert.Regexp(t, `^rank_\d{8}_\d{6}\.json$`, name)
}

func TestResolveOutputDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Directory = "out"
	assert.Equal(t, "out", resolveOutputDirectory(cfg))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, domain.DefaultReportDirectory), resolveOutputDirectory(config.DefaultConfig()))
}

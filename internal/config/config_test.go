package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, domain.DefaultPrimeCount, cfg.Capacities.PrimeCount)
	assert.Equal(t, 9, cfg.Capacities.MinPower)
	assert.Equal(t, 14, cfg.Capacities.MaxPower)
	assert.Equal(t, "top", cfg.Ranking.Mode)
	assert.Equal(t, 10, cfg.Ranking.TopK)
	assert.Equal(t, 0.10, cfg.Ranking.Threshold)
	assert.Equal(t, []string{"*.txt"}, cfg.Corpus.IncludePatterns)
	assert.False(t, cfg.Corpus.Dedupe)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfigIsIndependent(t *testing.T) {
	a := DefaultConfig()
	a.Corpus.IncludePatterns[0] = "*.csv"
	assert.Equal(t, []string{"*.txt"}, DefaultConfig().Corpus.IncludePatterns)
	assert.Equal(t, []string{"*.txt"}, domain.DefaultCorpusIncludePatterns)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid defaults", modify: func(*Config) {}},
		{name: "unknown hash", modify: func(c *Config) { c.Hashes.Names = []string{"crc32"} }, wantErr: "hashes.names"},
		{name: "duplicate hash", modify: func(c *Config) { c.Hashes.Names = []string{"m31", "mod31"} }, wantErr: "hashes.names"},
		{name: "negative prime count", modify: func(c *Config) { c.Capacities.PrimeCount = -1 }, wantErr: "prime_count"},
		{name: "power above limit", modify: func(c *Config) { c.Capacities.MaxPower = 63 }, wantErr: "max_power"},
		{name: "negative power", modify: func(c *Config) { c.Capacities.MinPower = -1 }, wantErr: "min_power"},
		{name: "inverted powers", modify: func(c *Config) { c.Capacities.MinPower = 12; c.Capacities.MaxPower = 10 }, wantErr: "min_power"},
		{name: "explicit capacities skip range checks", modify: func(c *Config) {
			c.Capacities.Explicit = []int64{0, 1, 97}
			c.Capacities.MinPower = 20
			c.Capacities.MaxPower = 10
		}},
		{name: "unknown mode", modify: func(c *Config) { c.Ranking.Mode = "best" }, wantErr: "ranking.mode"},
		{name: "zero top_k", modify: func(c *Config) { c.Ranking.TopK = 0 }, wantErr: "top_k"},
		{name: "zero threshold", modify: func(c *Config) { c.Ranking.Threshold = 0 }, wantErr: "threshold"},
		{name: "threshold above one", modify: func(c *Config) { c.Ranking.Threshold = 1.5 }, wantErr: "threshold"},
		{name: "threshold of one", modify: func(c *Config) { c.Ranking.Threshold = 1 }},
		{name: "bad pattern", modify: func(c *Config) { c.Corpus.IncludePatterns = []string{"[a-"} }, wantErr: "pattern"},
		{name: "bad format", modify: func(c *Config) { c.Output.Format = "xml" }, wantErr: "output.format"},
		{name: "html format", modify: func(c *Config) { c.Output.Format = "html" }},
		{name: "negative workers", modify: func(c *Config) { c.Performance.Workers = -2 }, wantErr: "workers"},
		{name: "negative timeout", modify: func(c *Config) { c.Performance.TimeoutSeconds = -1 }, wantErr: "timeout_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hashscan.yaml", `
hashes:
  names: [djb2, sdbm]
ranking:
  mode: threshold
  threshold: 0.05
capacities:
  explicit: [97, 1024]
performance:
  workers: 2
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"djb2", "sdbm"}, cfg.Hashes.Names)
	assert.Equal(t, "threshold", cfg.Ranking.Mode)
	assert.Equal(t, 0.05, cfg.Ranking.Threshold)
	assert.Equal(t, []int64{97, 1024}, cfg.Capacities.Explicit)
	assert.Equal(t, 2, cfg.Performance.Workers)

	// untouched values keep their defaults
	assert.Equal(t, 10, cfg.Ranking.TopK)
	assert.Equal(t, 150, cfg.Capacities.PrimeCount)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadConfigJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hashscan.json", `{"output": {"format": "csv"}, "corpus": {"dedupe": true}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.True(t, cfg.Corpus.Dedupe)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hashscan.yaml", "ranking:\n  top_k: 0\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigWithTargetPrefersToml(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "data", "cities")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	writeFile(t, root, TomlConfigFileName, "[ranking]\ntop_k = 3\n")
	corpus := writeFile(t, nested, "names.txt", "Paris\n")

	cfg, err := LoadConfigWithTarget("", corpus)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Ranking.TopK)

	// an explicit file wins over discovery
	explicit := writeFile(t, root, "other.yaml", "ranking:\n  top_k: 7\n")
	cfg, err = LoadConfigWithTarget(explicit, corpus)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Ranking.TopK)
}

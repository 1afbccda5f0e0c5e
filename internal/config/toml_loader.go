package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// TomlConfigFileName is the dedicated configuration file discovered by walking up directories
const TomlConfigFileName = ".hashscan.toml"

// HashscanTomlConfig represents the structure of .hashscan.toml. Pointers
// distinguish unset keys from zero values.
type HashscanTomlConfig struct {
	Hashes      TomlHashesConfig      `toml:"hashes"`
	Capacities  TomlCapacitiesConfig  `toml:"capacities"`
	Ranking     TomlRankingConfig     `toml:"ranking"`
	Corpus      TomlCorpusConfig      `toml:"corpus"`
	Output      TomlOutputConfig      `toml:"output"`
	Performance TomlPerformanceConfig `toml:"performance"`
}

type TomlHashesConfig struct {
	Names    []string `toml:"names"`
	Extended *bool    `toml:"extended"`
}

type TomlCapacitiesConfig struct {
	PrimesFile string  `toml:"primes_file"`
	PrimeCount *int    `toml:"prime_count"`
	MinPower   *int    `toml:"min_power"`
	MaxPower   *int    `toml:"max_power"`
	Explicit   []int64 `toml:"explicit"`
}

type TomlRankingConfig struct {
	Mode      string   `toml:"mode"`
	TopK      *int     `toml:"top_k"`
	Threshold *float64 `toml:"threshold"`
}

type TomlCorpusConfig struct {
	Paths           []string `toml:"paths"`
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	Recursive       *bool    `toml:"recursive"`
	Dedupe          *bool    `toml:"dedupe"`
}

type TomlOutputConfig struct {
	Format      string `toml:"format"`
	Directory   string `toml:"directory"`
	ShowSummary *bool  `toml:"show_summary"`
}

type TomlPerformanceConfig struct {
	Workers        *int `toml:"workers"`
	TimeoutSeconds *int `toml:"timeout_seconds"`
}

// TomlConfigLoader handles TOML configuration loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads the nearest .hashscan.toml above startDir, or the defaults
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	path, err := l.FindConfig(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadFile(path)
}

// LoadFile parses a TOML file and merges it over the defaults
func (l *TomlConfigLoader) LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// Parse decodes TOML content, merges it over the defaults and validates the result
func (l *TomlConfigLoader) Parse(data []byte) (*Config, error) {
	var tomlConfig HashscanTomlConfig
	if err := toml.Unmarshal(data, &tomlConfig); err != nil {
		return nil, err
	}

	config := DefaultConfig()
	l.merge(config, &tomlConfig)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// FindConfig walks up the directory tree from startDir to find .hashscan.toml
func (l *TomlConfigLoader) FindConfig(startDir string) (string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, TomlConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// merge copies every set value of t into config
func (l *TomlConfigLoader) merge(config *Config, t *HashscanTomlConfig) {
	// Hashes
	if len(t.Hashes.Names) > 0 {
		config.Hashes.Names = t.Hashes.Names
	}
	config.Hashes.Extended = boolValue(t.Hashes.Extended, config.Hashes.Extended)

	// Capacities
	if t.Capacities.PrimesFile != "" {
		config.Capacities.PrimesFile = t.Capacities.PrimesFile
	}
	config.Capacities.PrimeCount = intValue(t.Capacities.PrimeCount, config.Capacities.PrimeCount)
	config.Capacities.MinPower = intValue(t.Capacities.MinPower, config.Capacities.MinPower)
	config.Capacities.MaxPower = intValue(t.Capacities.MaxPower, config.Capacities.MaxPower)
	if len(t.Capacities.Explicit) > 0 {
		config.Capacities.Explicit = t.Capacities.Explicit
	}

	// Ranking
	if t.Ranking.Mode != "" {
		config.Ranking.Mode = t.Ranking.Mode
	}
	config.Ranking.TopK = intValue(t.Ranking.TopK, config.Ranking.TopK)
	if t.Ranking.Threshold != nil {
		config.Ranking.Threshold = *t.Ranking.Threshold
	}

	// Corpus
	if len(t.Corpus.Paths) > 0 {
		config.Corpus.Paths = t.Corpus.Paths
	}
	if len(t.Corpus.IncludePatterns) > 0 {
		config.Corpus.IncludePatterns = t.Corpus.IncludePatterns
	}
	if len(t.Corpus.ExcludePatterns) > 0 {
		config.Corpus.ExcludePatterns = t.Corpus.ExcludePatterns
	}
	config.Corpus.Recursive = boolValue(t.Corpus.Recursive, config.Corpus.Recursive)
	config.Corpus.Dedupe = boolValue(t.Corpus.Dedupe, config.Corpus.Dedupe)

	// Output
	if t.Output.Format != "" {
		config.Output.Format = t.Output.Format
	}
	if t.Output.Directory != "" {
		config.Output.Directory = t.Output.Directory
	}
	config.Output.ShowSummary = boolValue(t.Output.ShowSummary, config.Output.ShowSummary)

	// Performance
	config.Performance.Workers = intValue(t.Performance.Workers, config.Performance.Workers)
	config.Performance.TimeoutSeconds = intValue(t.Performance.TimeoutSeconds, config.Performance.TimeoutSeconds)
}

func boolValue(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func intValue(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

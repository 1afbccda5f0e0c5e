package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/hashfn"
	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	// Hashes selects the evaluated hash functions
	Hashes HashesConfig `mapstructure:"hashes" yaml:"hashes" toml:"hashes"`

	// Capacities controls the capacity candidates
	Capacities CapacitiesConfig `mapstructure:"capacities" yaml:"capacities" toml:"capacities"`

	// Ranking controls result selection
	Ranking RankingConfig `mapstructure:"ranking" yaml:"ranking" toml:"ranking"`

	// Corpus controls how corpus files are discovered and read
	Corpus CorpusConfig `mapstructure:"corpus" yaml:"corpus" toml:"corpus"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output"`

	// Performance holds worker pool and timeout settings
	Performance PerformanceConfig `mapstructure:"performance" yaml:"performance" toml:"performance"`
}

// HashesConfig selects hash functions
type HashesConfig struct {
	// Names lists functions by name or alias; empty means the default set
	Names []string `mapstructure:"names" yaml:"names" toml:"names"`

	// Extended adds the extended set when Names is empty
	Extended bool `mapstructure:"extended" yaml:"extended" toml:"extended"`
}

// CapacitiesConfig holds capacity candidate settings
type CapacitiesConfig struct {
	// PrimesFile is a file with one prime per line; empty means generated primes
	PrimesFile string `mapstructure:"primes_file" yaml:"primes_file" toml:"primes_file"`

	// PrimeCount is the length of the prime prefix
	PrimeCount int `mapstructure:"prime_count" yaml:"prime_count" toml:"prime_count"`

	// MinPower and MaxPower bound the power-of-two exponents (inclusive)
	MinPower int `mapstructure:"min_power" yaml:"min_power" toml:"min_power"`
	MaxPower int `mapstructure:"max_power" yaml:"max_power" toml:"max_power"`

	// Explicit replaces primes and powers when not empty
	Explicit []int64 `mapstructure:"explicit" yaml:"explicit" toml:"explicit"`
}

// RankingConfig holds ranking settings
type RankingConfig struct {
	// Mode is top, threshold or all
	Mode string `mapstructure:"mode" yaml:"mode" toml:"mode"`

	// TopK is the number of results in top mode
	TopK int `mapstructure:"top_k" yaml:"top_k" toml:"top_k"`

	// Threshold is the exclusive rate bound in threshold mode
	Threshold float64 `mapstructure:"threshold" yaml:"threshold" toml:"threshold"`
}

// CorpusConfig holds corpus source settings
type CorpusConfig struct {
	// Paths are corpus files or directories; empty means the built-in city corpus
	Paths []string `mapstructure:"paths" yaml:"paths" toml:"paths"`

	// IncludePatterns and ExcludePatterns filter files found in directories
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" toml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" toml:"exclude_patterns"`

	// Recursive controls whether directories are walked recursively
	Recursive bool `mapstructure:"recursive" yaml:"recursive" toml:"recursive"`

	// Dedupe drops repeated entries before evaluation
	Dedupe bool `mapstructure:"dedupe" yaml:"dedupe" toml:"dedupe"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv, html
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// Directory receives report files; empty means .hashscan/reports under the working directory
	Directory string `mapstructure:"directory" yaml:"directory" toml:"directory"`

	// ShowSummary appends the per-function summary to text output
	ShowSummary bool `mapstructure:"show_summary" yaml:"show_summary" toml:"show_summary"`
}

// PerformanceConfig holds worker pool settings
type PerformanceConfig struct {
	// Workers is the evaluation pool size; 0 means one per CPU
	Workers int `mapstructure:"workers" yaml:"workers" toml:"workers"`

	// TimeoutSeconds bounds the whole run; 0 means no timeout
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Hashes: HashesConfig{
			Names:    []string{},
			Extended: false,
		},
		Capacities: CapacitiesConfig{
			PrimeCount: domain.DefaultPrimeCount,
			MinPower:   domain.DefaultMinPower,
			MaxPower:   domain.DefaultMaxPower,
			Explicit:   []int64{},
		},
		Ranking: RankingConfig{
			Mode:      domain.DefaultRankMode,
			TopK:      domain.DefaultTopK,
			Threshold: domain.DefaultRateThreshold,
		},
		Corpus: CorpusConfig{
			Paths:           []string{},
			IncludePatterns: append([]string{}, domain.DefaultCorpusIncludePatterns...),
			ExcludePatterns: append([]string{}, domain.DefaultCorpusExcludePatterns...),
			Recursive:       true,
		},
		Output: OutputConfig{
			Format: domain.DefaultOutputFormat,
		},
		Performance: PerformanceConfig{
			Workers:        domain.DefaultWorkers,
			TimeoutSeconds: domain.DefaultTimeoutSeconds,
		},
	}
}

// yamlConfigCandidates are the YAML/JSON file names searched in the working and home directories
var yamlConfigCandidates = []string{
	".hashscan.yaml",
	".hashscan.yml",
	"hashscan.yaml",
	"hashscan.yml",
	".hashscan.json",
	"hashscan.json",
}

// LoadConfig loads configuration from configPath, or from a discovered
// YAML/JSON file, or returns the defaults when none exists.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig()
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}
	return loadFile(configPath)
}

// LoadConfigWithTarget resolves configuration for an analysis of targetPath.
// An explicit configPath wins; otherwise a .hashscan.toml found by walking up
// from targetPath, then a YAML/JSON file in the working or home directory.
func LoadConfigWithTarget(configPath, targetPath string) (*Config, error) {
	if configPath != "" {
		return loadFile(configPath)
	}

	startDir := targetDirectory(targetPath)
	loader := NewTomlConfigLoader()
	if path, err := loader.FindConfig(startDir); err == nil {
		return loader.LoadFile(path)
	}

	return LoadConfig("")
}

// loadFile dispatches on the file extension
func loadFile(path string) (*Config, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return NewTomlConfigLoader().LoadFile(path)
	}
	return loadViperConfig(path)
}

func loadViperConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(configPath)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Unmarshal into config struct
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// findDefaultConfig looks for YAML/JSON configuration in the working directory, then the home directory
func findDefaultConfig() string {
	for _, candidate := range yamlConfigCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range yamlConfigCandidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// targetDirectory returns the directory to start config discovery from
func targetDirectory(targetPath string) string {
	if targetPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			return cwd
		}
		return "."
	}

	abs, err := filepath.Abs(targetPath)
	if err != nil {
		abs = targetPath
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return filepath.Dir(abs)
	}
	return abs
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if len(c.Hashes.Names) > 0 {
		if _, err := hashfn.Resolve(c.Hashes.Names); err != nil {
			return fmt.Errorf("hashes.names: %w", err)
		}
	}

	if err := c.validateCapacities(); err != nil {
		return err
	}

	if err := c.validateRanking(); err != nil {
		return err
	}

	for _, pattern := range append(append([]string{}, c.Corpus.IncludePatterns...), c.Corpus.ExcludePatterns...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid corpus pattern '%s'", pattern)
		}
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"csv":  true,
		"html": true,
	}

	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv, html", c.Output.Format)
	}

	if c.Performance.Workers < 0 {
		return fmt.Errorf("performance.workers must be >= 0, got %d", c.Performance.Workers)
	}

	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}

func (c *Config) validateCapacities() error {
	caps := c.Capacities

	// An explicit list replaces the generated candidates
	if len(caps.Explicit) > 0 {
		return nil
	}

	if caps.PrimeCount < 0 {
		return fmt.Errorf("capacities.prime_count must be >= 0, got %d", caps.PrimeCount)
	}

	if caps.MinPower < 0 || caps.MinPower > domain.MaxPowerLimit {
		return fmt.Errorf("capacities.min_power must be between 0 and %d, got %d", domain.MaxPowerLimit, caps.MinPower)
	}

	if caps.MaxPower < 0 || caps.MaxPower > domain.MaxPowerLimit {
		return fmt.Errorf("capacities.max_power must be between 0 and %d, got %d", domain.MaxPowerLimit, caps.MaxPower)
	}

	if caps.MinPower > caps.MaxPower {
		return fmt.Errorf("capacities.min_power (%d) must be <= max_power (%d)", caps.MinPower, caps.MaxPower)
	}

	return nil
}

func (c *Config) validateRanking() error {
	switch domain.RankMode(c.Ranking.Mode) {
	case domain.RankModeTop, domain.RankModeThreshold, domain.RankModeAll:
	default:
		return fmt.Errorf("invalid ranking.mode '%s', must be one of: top, threshold, all", c.Ranking.Mode)
	}

	if c.Ranking.TopK < 1 {
		return fmt.Errorf("ranking.top_k must be >= 1, got %d", c.Ranking.TopK)
	}

	if c.Ranking.Threshold <= 0 || c.Ranking.Threshold > 1 {
		return fmt.Errorf("ranking.threshold must be in (0, 1], got %f", c.Ranking.Threshold)
	}

	return nil
}

package service

import (
	"fmt"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/config"
)

// CollisionConfigurationLoaderImpl implements the CollisionConfigurationLoader interface
type CollisionConfigurationLoaderImpl struct{}

// NewCollisionConfigurationLoader creates a new configuration loader service
func NewCollisionConfigurationLoader() *CollisionConfigurationLoaderImpl {
	return &CollisionConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (cl *CollisionConfigurationLoaderImpl) LoadConfig(path string) (*domain.CollisionRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cl.configToRequest(cfg), nil
}

// LoadConfigForTarget resolves configuration for a run over targetPath: an
// explicit configPath, else the nearest .hashscan.toml, else YAML/JSON discovery
func (cl *CollisionConfigurationLoaderImpl) LoadConfigForTarget(configPath, targetPath string) (*domain.CollisionRequest, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return nil, err
	}
	return cl.configToRequest(cfg), nil
}

// LoadDefaultConfig loads discovered configuration, or the built-in defaults
// when discovery fails
func (cl *CollisionConfigurationLoaderImpl) LoadDefaultConfig() *domain.CollisionRequest {
	if req, err := cl.LoadConfigForTarget("", ""); err == nil {
		return req
	}
	return cl.configToRequest(config.DefaultConfig())
}

// MergeConfig merges CLI flags with configuration file values. Flags listed in
// override.ExplicitFlags win; paths and output settings always come from override.
func (cl *CollisionConfigurationLoaderImpl) MergeConfig(base *domain.CollisionRequest, override *domain.CollisionRequest) *domain.CollisionRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	ft := config.NewFlagTrackerWithFlags(override.ExplicitFlags)
	merged := *base

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}

	// Output settings always come from the command line
	merged.OutputFormat = override.OutputFormat
	merged.OutputWriter = override.OutputWriter
	merged.OutputPath = override.OutputPath
	merged.NoOpen = override.NoOpen
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
	merged.ExplicitFlags = override.ExplicitFlags

	merged.Functions = ft.MergeStringSlice(base.Functions, override.Functions, config.FlagHash)
	merged.Extended = ft.MergeBool(base.Extended, override.Extended, config.FlagExtended)

	merged.PrimesPath = ft.MergeString(base.PrimesPath, override.PrimesPath, config.FlagPrimes)
	merged.PrimeCount = ft.MergeInt(base.PrimeCount, override.PrimeCount, config.FlagPrimeCount)
	merged.MinPower = ft.MergeInt(base.MinPower, override.MinPower, config.FlagMinPower)
	merged.MaxPower = ft.MergeInt(base.MaxPower, override.MaxPower, config.FlagMaxPower)
	merged.Capacities = ft.MergeInt64Slice(base.Capacities, override.Capacities, config.FlagCapacity)

	merged.Mode = domain.RankMode(ft.MergeString(string(base.Mode), string(override.Mode), config.FlagMode))
	merged.TopK = ft.MergeInt(base.TopK, override.TopK, config.FlagTop)
	merged.Threshold = ft.MergeFloat64(base.Threshold, override.Threshold, config.FlagThreshold)

	merged.Recursive = ft.MergeBool(base.Recursive, override.Recursive, config.FlagRecursive)
	merged.IncludePatterns = ft.MergeStringSlice(base.IncludePatterns, override.IncludePatterns, config.FlagInclude)
	merged.ExcludePatterns = ft.MergeStringSlice(base.ExcludePatterns, override.ExcludePatterns, config.FlagExclude)
	merged.Dedupe = ft.MergeBool(base.Dedupe, override.Dedupe, config.FlagDedupe)

	merged.ShowSummary = ft.MergeBool(base.ShowSummary, override.ShowSummary, config.FlagSummary)
	merged.Workers = ft.MergeInt(base.Workers, override.Workers, config.FlagWorkers)
	merged.TimeoutSeconds = ft.MergeInt(base.TimeoutSeconds, override.TimeoutSeconds, config.FlagTimeout)

	return &merged
}

// configToRequest converts a Config to domain.CollisionRequest
func (cl *CollisionConfigurationLoaderImpl) configToRequest(cfg *config.Config) *domain.CollisionRequest {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &domain.CollisionRequest{
		Paths:           cfg.Corpus.Paths,
		Recursive:       cfg.Corpus.Recursive,
		IncludePatterns: cfg.Corpus.IncludePatterns,
		ExcludePatterns: cfg.Corpus.ExcludePatterns,
		Dedupe:          cfg.Corpus.Dedupe,

		Functions: cfg.Hashes.Names,
		Extended:  cfg.Hashes.Extended,

		PrimesPath: cfg.Capacities.PrimesFile,
		PrimeCount: cfg.Capacities.PrimeCount,
		MinPower:   cfg.Capacities.MinPower,
		MaxPower:   cfg.Capacities.MaxPower,
		Capacities: cfg.Capacities.Explicit,

		Mode:      domain.RankMode(cfg.Ranking.Mode),
		TopK:      cfg.Ranking.TopK,
		Threshold: cfg.Ranking.Threshold,

		OutputFormat: domain.OutputFormat(cfg.Output.Format),
		ShowSummary:  cfg.Output.ShowSummary,

		Workers:        cfg.Performance.Workers,
		TimeoutSeconds: cfg.Performance.TimeoutSeconds,
	}
}

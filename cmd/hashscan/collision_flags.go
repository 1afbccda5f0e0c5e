package main

import (
	"fmt"

	"github.com/ludo-technologies/hashscan/app"
	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/config"
	"github.com/ludo-technologies/hashscan/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// collisionFlags holds the flags shared by rank and eval
type collisionFlags struct {
	// Capacity candidates
	primesPath string
	primeCount int
	minPower   int
	maxPower   int
	capacities []int64

	// Corpus selection
	recursive       bool
	includePatterns []string
	excludePatterns []string
	dedupe          bool

	// Output
	json        bool
	yaml        bool
	csv         bool
	html        bool
	noOpen      bool
	showSummary bool

	workers    int
	timeout    int
	configPath string
}

func (f *collisionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.primesPath, config.FlagPrimes, "", "File with one prime per line (default: generated primes)")
	cmd.Flags().IntVar(&f.primeCount, config.FlagPrimeCount, domain.DefaultPrimeCount, "Number of leading primes used as capacities")
	cmd.Flags().IntVar(&f.minPower, config.FlagMinPower, domain.DefaultMinPower, "Smallest power-of-two exponent")
	cmd.Flags().IntVar(&f.maxPower, config.FlagMaxPower, domain.DefaultMaxPower, "Largest power-of-two exponent")
	cmd.Flags().Int64SliceVar(&f.capacities, config.FlagCapacity, nil, "Explicit capacity (repeatable, replaces primes and powers)")

	cmd.Flags().BoolVar(&f.recursive, config.FlagRecursive, true, "Recursively read corpus directories")
	cmd.Flags().StringSliceVar(&f.includePatterns, config.FlagInclude, domain.DefaultCorpusIncludePatterns, "Corpus file patterns in directories")
	cmd.Flags().StringSliceVar(&f.excludePatterns, config.FlagExclude, []string{}, "Excluded corpus file patterns")
	cmd.Flags().BoolVar(&f.dedupe, config.FlagDedupe, false, "Drop repeated corpus entries before evaluating")

	cmd.Flags().BoolVar(&f.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&f.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&f.csv, "csv", false, "Generate CSV report file")
	cmd.Flags().BoolVar(&f.html, "html", false, "Generate HTML report file")
	cmd.Flags().BoolVar(&f.noOpen, "no-open", false, "Don't auto-open HTML in browser")
	cmd.Flags().BoolVar(&f.showSummary, config.FlagSummary, false, "Append per-function summary to text output")

	cmd.Flags().IntVar(&f.workers, config.FlagWorkers, domain.DefaultWorkers, "Parallel workers (0 = one per CPU)")
	cmd.Flags().IntVar(&f.timeout, config.FlagTimeout, domain.DefaultTimeoutSeconds, "Overall timeout in seconds (0 = none)")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Configuration file path")
}

// request builds the collision request shared by rank and eval. Report
// formats other than text go to a timestamped file named after command.
func (f *collisionFlags) request(cmd *cobra.Command, command string, paths []string) (domain.CollisionRequest, error) {
	cfg, err := config.LoadConfigWithTarget(f.configPath, getTargetPathFromArgs(paths))
	if err != nil {
		return domain.CollisionRequest{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	resolver := service.NewOutputFormatResolver()
	format, ext, err := resolver.Determine(f.html, f.json, f.csv, f.yaml)
	if err != nil {
		return domain.CollisionRequest{}, err
	}
	if format == domain.OutputFormatText {
		// No format flag: fall back to the configured format
		if format, ext, err = resolver.Parse(cfg.Output.Format); err != nil {
			return domain.CollisionRequest{}, err
		}
	}

	outputPath := ""
	if format != domain.OutputFormatText {
		if outputPath, err = generateOutputFilePath(command, ext, cfg); err != nil {
			return domain.CollisionRequest{}, err
		}
	}

	return domain.CollisionRequest{
		Paths:           paths,
		Recursive:       f.recursive,
		IncludePatterns: f.includePatterns,
		ExcludePatterns: f.excludePatterns,
		Dedupe:          f.dedupe,

		PrimesPath: f.primesPath,
		PrimeCount: f.primeCount,
		MinPower:   f.minPower,
		MaxPower:   f.maxPower,
		Capacities: f.capacities,

		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		OutputPath:   outputPath,
		NoOpen:       f.noOpen || !service.IsInteractiveEnvironment(),
		ShowSummary:  f.showSummary,

		Workers:        f.workers,
		TimeoutSeconds: f.timeout,

		ConfigPath:    f.configPath,
		ExplicitFlags: explicitFlags(cmd),
	}, nil
}

// explicitFlags records the flags set on the command line; only those
// override values from the configuration file
func explicitFlags(cmd *cobra.Command) map[string]bool {
	flags := make(map[string]bool)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		flags[f.Name] = true
	})
	return flags
}

// newCollisionUseCase wires the collision use case for a command
func newCollisionUseCase(cmd *cobra.Command) (*app.CollisionUseCase, error) {
	collisionService := service.NewCollisionService()

	progress := service.NewProgressManager()
	progress.SetWriter(cmd.ErrOrStderr())
	collisionService.SetProgressManager(progress)

	return app.NewCollisionUseCaseBuilder().
		WithService(collisionService).
		WithCorpusReader(service.NewCorpusReader()).
		WithFormatter(service.NewCollisionFormatter()).
		WithConfigLoader(service.NewCollisionConfigurationLoader()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
}

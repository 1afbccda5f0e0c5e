package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/analyzer"
	"github.com/ludo-technologies/hashscan/internal/dataset"
	"github.com/ludo-technologies/hashscan/internal/logging"
	svc "github.com/ludo-technologies/hashscan/service"
)

// CollisionUseCase orchestrates the collision-rate experiment
type CollisionUseCase struct {
	service      domain.CollisionService
	reader       domain.CorpusReader
	formatter    domain.CollisionOutputFormatter
	configLoader domain.CollisionConfigurationLoader
	output       domain.ReportWriter
}

// NewCollisionUseCase creates a new collision use case
func NewCollisionUseCase(
	service domain.CollisionService,
	reader domain.CorpusReader,
	formatter domain.CollisionOutputFormatter,
	configLoader domain.CollisionConfigurationLoader,
) *CollisionUseCase {
	return &CollisionUseCase{
		service:      service,
		reader:       reader,
		formatter:    formatter,
		configLoader: configLoader,
		output:       svc.NewFileOutputWriter(nil),
	}
}

// prepareAnalysis merges configuration, validates the request and loads the
// corpus and capacity candidates.
func (uc *CollisionUseCase) prepareAnalysis(ctx context.Context, req domain.CollisionRequest) (domain.CollisionRequest, domain.CollisionDataset, error) {
	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return req, domain.CollisionDataset{}, domain.NewConfigError("failed to load configuration", err)
	}

	if err := uc.validateRequest(finalReq); err != nil {
		return req, domain.CollisionDataset{}, domain.NewInvalidInputError("invalid request", err)
	}

	data, err := uc.loadDataset(ctx, finalReq)
	if err != nil {
		return req, domain.CollisionDataset{}, err
	}

	return finalReq, data, nil
}

// Execute performs the complete experiment and writes the report
func (uc *CollisionUseCase) Execute(ctx context.Context, req domain.CollisionRequest) error {
	finalReq, data, err := uc.prepareAnalysis(ctx, req)
	if err != nil {
		return err
	}

	response, err := uc.service.Analyze(ctx, data, finalReq)
	if err != nil {
		return domain.NewAnalysisError("collision analysis failed", err)
	}

	var out io.Writer
	if finalReq.OutputPath == "" {
		out = finalReq.OutputWriter
	}
	if err := uc.output.Write(out, finalReq.OutputPath, finalReq.OutputFormat, finalReq.NoOpen, func(w io.Writer) error {
		return uc.formatter.Write(response, finalReq.OutputFormat, w)
	}); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// AnalyzeAndReturn performs the experiment and returns the response without formatting
func (uc *CollisionUseCase) AnalyzeAndReturn(ctx context.Context, req domain.CollisionRequest) (*domain.CollisionResponse, error) {
	finalReq, data, err := uc.prepareAnalysis(ctx, req)
	if err != nil {
		return nil, err
	}

	response, err := uc.service.Analyze(ctx, data, finalReq)
	if err != nil {
		return nil, domain.NewAnalysisError("collision analysis failed", err)
	}

	return response, nil
}

// loadDataset reads the corpus and builds the capacity candidates
func (uc *CollisionUseCase) loadDataset(ctx context.Context, req domain.CollisionRequest) (domain.CollisionDataset, error) {
	logger := logging.FromContext(ctx, "usecase")
	var data domain.CollisionDataset

	if len(req.Paths) == 0 {
		data.Corpus = dataset.Cities()
		data.CorpusSources = []string{dataset.CitiesSource}
	} else {
		corpus, sources, err := uc.reader.ReadCorpus(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
		if err != nil {
			return data, domain.NewInvalidInputError("failed to load corpus", err)
		}
		data.Corpus = corpus
		data.CorpusSources = sources
	}

	capacities, err := uc.loadCapacities(req)
	if err != nil {
		return data, domain.NewInvalidInputError("failed to load capacities", err)
	}
	data.Capacities = capacities

	logger.V(logging.LevelDebug).Info("Loaded dataset",
		"entries", len(data.Corpus),
		"sources", data.CorpusSources,
		"capacities", len(data.Capacities))

	return data, nil
}

// loadCapacities returns the explicit list, or a prime prefix followed by the power-of-two range
func (uc *CollisionUseCase) loadCapacities(req domain.CollisionRequest) ([]int64, error) {
	if len(req.Capacities) > 0 {
		out := make([]int64, len(req.Capacities))
		copy(out, req.Capacities)
		return out, nil
	}

	var primes []int64
	if req.PrimesPath != "" {
		if req.PrimeCount > 0 {
			read, err := uc.reader.ReadCapacities(req.PrimesPath, req.PrimeCount)
			if err != nil {
				return nil, err
			}
			primes = read
		}
	} else {
		primes = analyzer.Primes(req.PrimeCount)
	}

	capacities := analyzer.CandidateCapacities(primes, req.MinPower, req.MaxPower)
	if len(capacities) == 0 {
		return nil, fmt.Errorf("no capacity candidates: prime_count is 0 and the power range is empty")
	}
	return capacities, nil
}

// validateRequest validates the collision request
func (uc *CollisionUseCase) validateRequest(req domain.CollisionRequest) error {
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}

	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatCSV, domain.OutputFormatHTML:
		// Valid formats
	default:
		return fmt.Errorf("unsupported output format: %s", req.OutputFormat)
	}

	switch req.Mode {
	case "", domain.RankModeTop, domain.RankModeThreshold, domain.RankModeAll:
	default:
		return fmt.Errorf("unknown ranking mode: %s (must be top, threshold or all)", req.Mode)
	}
	if req.TopK < 0 {
		return fmt.Errorf("top must be at least 1, got %d", req.TopK)
	}
	if req.Threshold < 0 || req.Threshold > 1 {
		return fmt.Errorf("threshold must be in (0, 1], got %g", req.Threshold)
	}

	if len(req.Capacities) == 0 {
		if req.PrimeCount < 0 {
			return fmt.Errorf("prime count cannot be negative")
		}
		if req.MinPower < 0 || req.MaxPower > domain.MaxPowerLimit {
			return fmt.Errorf("powers must be between 0 and %d", domain.MaxPowerLimit)
		}
		if req.MinPower > req.MaxPower {
			return fmt.Errorf("min power (%d) cannot be greater than max power (%d)", req.MinPower, req.MaxPower)
		}
	}

	if req.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if req.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

// loadAndMergeConfig loads configuration from file and merges with request
func (uc *CollisionUseCase) loadAndMergeConfig(req domain.CollisionRequest) (domain.CollisionRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	target := ""
	if len(req.Paths) > 0 {
		target = req.Paths[0]
	}

	configReq, err := uc.configLoader.LoadConfigForTarget(req.ConfigPath, target)
	if err != nil {
		if req.ConfigPath != "" {
			return req, fmt.Errorf("failed to load config from %s: %w", req.ConfigPath, err)
		}
		return req, err
	}

	if configReq != nil {
		merged := uc.configLoader.MergeConfig(configReq, &req)
		return *merged, nil
	}

	return req, nil
}

// CollisionUseCaseBuilder provides a builder pattern for creating CollisionUseCase
type CollisionUseCaseBuilder struct {
	service      domain.CollisionService
	reader       domain.CorpusReader
	formatter    domain.CollisionOutputFormatter
	configLoader domain.CollisionConfigurationLoader
	output       domain.ReportWriter
}

// NewCollisionUseCaseBuilder creates a new builder
func NewCollisionUseCaseBuilder() *CollisionUseCaseBuilder {
	return &CollisionUseCaseBuilder{}
}

// WithService sets the collision service
func (b *CollisionUseCaseBuilder) WithService(service domain.CollisionService) *CollisionUseCaseBuilder {
	b.service = service
	return b
}

// WithCorpusReader sets the corpus reader
func (b *CollisionUseCaseBuilder) WithCorpusReader(reader domain.CorpusReader) *CollisionUseCaseBuilder {
	b.reader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *CollisionUseCaseBuilder) WithFormatter(formatter domain.CollisionOutputFormatter) *CollisionUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *CollisionUseCaseBuilder) WithConfigLoader(configLoader domain.CollisionConfigurationLoader) *CollisionUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithOutputWriter sets the report writer
func (b *CollisionUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *CollisionUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the CollisionUseCase with the configured dependencies
func (b *CollisionUseCaseBuilder) Build() (*CollisionUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("collision service is required")
	}
	if b.reader == nil {
		return nil, fmt.Errorf("corpus reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	uc := NewCollisionUseCase(
		b.service,
		b.reader,
		b.formatter,
		b.configLoader,
	)
	if b.output != nil {
		uc.output = b.output
	}
	return uc, nil
}

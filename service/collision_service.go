package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/analyzer"
	"github.com/ludo-technologies/hashscan/internal/hashfn"
	"github.com/ludo-technologies/hashscan/internal/logging"
	"github.com/ludo-technologies/hashscan/internal/version"
)

// CollisionServiceImpl implements the CollisionService interface
type CollisionServiceImpl struct {
	executor domain.ParallelExecutor
	progress domain.ProgressManager
}

// NewCollisionService creates a new collision service implementation
func NewCollisionService() *CollisionServiceImpl {
	return &CollisionServiceImpl{
		executor: NewParallelExecutor(),
	}
}

// SetProgressManager attaches a progress manager advanced once per evaluation
func (s *CollisionServiceImpl) SetProgressManager(pm domain.ProgressManager) {
	s.progress = pm
}

// SetParallelExecutor replaces the executor used for evaluations
func (s *CollisionServiceImpl) SetParallelExecutor(executor domain.ParallelExecutor) {
	s.executor = executor
}

// Analyze evaluates every selected function at every capacity and ranks the results
func (s *CollisionServiceImpl) Analyze(ctx context.Context, dataset domain.CollisionDataset, req domain.CollisionRequest) (*domain.CollisionResponse, error) {
	logger := logging.FromContext(ctx, "collision")

	functions, err := hashfn.Select(req.Functions, req.Extended)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid hash function selection", err)
	}

	if len(dataset.Capacities) == 0 {
		return nil, domain.NewInvalidInputError("no capacity candidates", nil)
	}

	evaluator, err := analyzer.NewCollisionEvaluator(dataset.Corpus, analyzer.WithDedupe(req.Dedupe))
	if err != nil {
		return nil, err
	}

	var warnings []string
	capacities := analyzer.NewCapacities(dataset.Capacities)
	for _, c := range capacities {
		if c.Kind == analyzer.CapacityDegenerate {
			logger.Info("Degenerate capacity, every entry lands in bucket 0", "capacity", c.Size)
			warnings = append(warnings, fmt.Sprintf("capacity %d is not positive; every entry lands in bucket 0", c.Size))
		}
	}

	logger.V(logging.LevelDebug).Info("Evaluating collision rates",
		"functions", hashfn.Names(functions),
		"capacities", len(capacities),
		"corpus", evaluator.Size(),
		"duplicates", evaluator.Duplicates(),
		"dedupe", req.Dedupe,
		"workers", req.Workers)

	start := time.Now()
	results, err := s.evaluate(ctx, evaluator, functions, capacities, req)
	if err != nil {
		return nil, err
	}
	logger.V(logging.LevelDebug).Info("Evaluation finished", "evaluations", len(results), "elapsed", time.Since(start))

	ranked, err := analyzer.Rank(results, rankOptions(req))
	if err != nil {
		return nil, err
	}

	return &domain.CollisionResponse{
		Results:       toEvaluationResults(ranked),
		Functions:     toFunctionSummaries(analyzer.SummarizeByFunction(results)),
		Summary:       s.generateSummary(evaluator, functions, capacities, results, ranked, req),
		Warnings:      warnings,
		GeneratedAt:   time.Now().Format(time.RFC3339),
		Version:       version.Short(),
		CorpusSources: dataset.CorpusSources,
		Config:        s.buildConfigForResponse(req),
		ShowSummary:   req.ShowSummary,
	}, nil
}

// evaluate runs one task per function. Each task computes the digests once
// and reduces them into every capacity, writing into the result slots of its
// function so the cross-product order survives parallel execution.
func (s *CollisionServiceImpl) evaluate(ctx context.Context, evaluator *analyzer.CollisionEvaluator, functions []hashfn.Func, capacities []analyzer.Capacity, req domain.CollisionRequest) ([]analyzer.CollisionResult, error) {
	logger := logging.FromContext(ctx, "collision")
	results := make([]analyzer.CollisionResult, len(functions)*len(capacities))

	if s.progress != nil {
		s.progress.Initialize(len(results))
		s.progress.Start()
	}

	tasks := make([]domain.ExecutableTask, len(functions))
	for i, fn := range functions {
		i, fn := i, fn
		tasks[i] = NewSimpleTask(fn.Name, true, func(ctx context.Context) (interface{}, error) {
			digests := evaluator.Digests(fn)
			for j, capacity := range capacities {
				if err := ctx.Err(); err != nil {
					return nil, err
				}

				result, err := evaluator.EvaluateDigests(fn.Name, digests, capacity)
				if err != nil {
					return nil, err
				}
				results[i*len(capacities)+j] = result

				logger.V(logging.LevelTrace).Info("Evaluated",
					"function", fn.Name,
					"capacity", capacity.Size,
					"kind", capacity.Kind.String(),
					"collisions", result.Collisions,
					"rate", result.Rate)

				if s.progress != nil {
					s.progress.Increment()
				}
			}
			return nil, nil
		})
	}

	s.executor.SetMaxConcurrency(req.Workers)
	s.executor.SetTimeout(time.Duration(req.TimeoutSeconds) * time.Second)

	err := s.executor.Execute(ctx, tasks)
	if s.progress != nil {
		s.progress.Complete(err == nil)
	}
	if err != nil {
		return nil, domain.NewAnalysisError("collision evaluation failed", err)
	}

	return results, nil
}

func rankOptions(req domain.CollisionRequest) analyzer.RankOptions {
	opts := analyzer.DefaultRankOptions()
	if req.Mode != "" {
		opts.Mode = req.Mode
	}
	if req.TopK != 0 {
		opts.TopK = req.TopK
	}
	if req.Threshold != 0 {
		opts.Threshold = req.Threshold
	}
	return opts
}

// generateSummary creates aggregate statistics over all evaluations
func (s *CollisionServiceImpl) generateSummary(evaluator *analyzer.CollisionEvaluator, functions []hashfn.Func, capacities []analyzer.Capacity, results, ranked []analyzer.CollisionResult, req domain.CollisionRequest) domain.CollisionSummary {
	summary := domain.CollisionSummary{
		CorpusSize:       evaluator.Size(),
		DuplicateEntries: evaluator.Duplicates(),
		Functions:        len(functions),
		Capacities:       len(capacities),
		Evaluations:      len(results),
		Selected:         len(ranked),
		Mode:             string(rankOptions(req).Mode),
	}

	for i, r := range results {
		if r.Perfect() {
			summary.PerfectEvaluations++
		}
		if i == 0 || r.Rate < summary.BestRate {
			summary.BestRate = r.Rate
		}
	}

	return summary
}

// buildConfigForResponse records the parameters of the run
func (s *CollisionServiceImpl) buildConfigForResponse(req domain.CollisionRequest) map[string]interface{} {
	opts := rankOptions(req)
	return map[string]interface{}{
		"functions":       req.Functions,
		"extended":        req.Extended,
		"dedupe":          req.Dedupe,
		"mode":            string(opts.Mode),
		"top_k":           opts.TopK,
		"threshold":       opts.Threshold,
		"prime_count":     req.PrimeCount,
		"min_power":       req.MinPower,
		"max_power":       req.MaxPower,
		"workers":         req.Workers,
		"timeout_seconds": req.TimeoutSeconds,
	}
}

func toEvaluationResults(results []analyzer.CollisionResult) []domain.EvaluationResult {
	out := make([]domain.EvaluationResult, len(results))
	for i, r := range results {
		out[i] = domain.EvaluationResult{
			Function:      r.Function,
			Capacity:      r.Capacity.Size,
			CapacityKind:  r.Capacity.Kind.String(),
			CorpusSize:    r.CorpusSize,
			BucketsUsed:   r.BucketsUsed,
			Collisions:    r.Collisions,
			CollisionRate: r.Rate,
			ExpectedRate:  r.ExpectedRate,
			Duration:      r.Duration,
		}
	}
	return out
}

func toFunctionSummaries(summaries []analyzer.FunctionSummary) []domain.FunctionSummary {
	out := make([]domain.FunctionSummary, len(summaries))
	for i, s := range summaries {
		out[i] = domain.FunctionSummary(s)
	}
	return out
}

// DigestServiceImpl implements the DigestService interface
type DigestServiceImpl struct{}

// NewDigestService creates a new digest service
func NewDigestService() *DigestServiceImpl {
	return &DigestServiceImpl{}
}

// Digest computes every selected function over every key, key-major
func (s *DigestServiceImpl) Digest(ctx context.Context, req domain.DigestRequest) ([]domain.DigestEntry, error) {
	if len(req.Keys) == 0 {
		return nil, domain.NewInvalidInputError("no keys to digest", nil)
	}

	functions, err := hashfn.Select(req.Functions, req.Extended)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid hash function selection", err)
	}

	entries := make([]domain.DigestEntry, 0, len(req.Keys)*len(functions))
	for _, key := range req.Keys {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("digest cancelled: %w", err)
		}
		for _, fn := range functions {
			entries = append(entries, newDigestEntry(key, fn.Name, fn.Sum(key)))
		}
	}
	return entries, nil
}

func newDigestEntry(key, function string, digest *big.Int) domain.DigestEntry {
	return domain.DigestEntry{
		Key:      key,
		Function: function,
		Decimal:  digest.String(),
		Hex:      digest.Text(16),
		Bits:     digest.BitLen(),
	}
}

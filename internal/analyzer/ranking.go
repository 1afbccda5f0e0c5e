package analyzer

import (
	"fmt"
	"sort"

	"github.com/ludo-technologies/hashscan/domain"
)

// RankOptions configures result selection
type RankOptions struct {
	Mode domain.RankMode

	// TopK is the number of results kept in top mode
	TopK int

	// Threshold is the exclusive upper bound on the rate in threshold mode
	Threshold float64
}

// DefaultRankOptions returns top-10 ranking
func DefaultRankOptions() RankOptions {
	return RankOptions{
		Mode:      domain.RankModeTop,
		TopK:      domain.DefaultTopK,
		Threshold: domain.DefaultRateThreshold,
	}
}

// Rank selects results according to opts. Results must be in cross-product
// order (function-major, then capacity); equal rates keep that order.
func Rank(results []CollisionResult, opts RankOptions) ([]CollisionResult, error) {
	ordered := make([]CollisionResult, len(results))
	copy(ordered, results)

	switch opts.Mode {
	case domain.RankModeAll:
		return ordered, nil

	case domain.RankModeTop, "":
		if opts.TopK < 1 {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("top_k must be at least 1, got %d", opts.TopK), nil)
		}
		sortByRate(ordered)
		if len(ordered) > opts.TopK {
			ordered = ordered[:opts.TopK]
		}
		return ordered, nil

	case domain.RankModeThreshold:
		if opts.Threshold <= 0 || opts.Threshold > 1 {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("threshold must be in (0, 1], got %g", opts.Threshold), nil)
		}
		selected := ordered[:0]
		for _, r := range ordered {
			if r.Rate < opts.Threshold {
				selected = append(selected, r)
			}
		}
		sortByRate(selected)
		return selected, nil

	default:
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown ranking mode: %s", opts.Mode), nil)
	}
}

func sortByRate(results []CollisionResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rate < results[j].Rate
	})
}

// FunctionSummary aggregates the evaluations of one function
type FunctionSummary struct {
	Function          string
	Evaluations       int
	BestCapacity      int64
	BestRate          float64
	MeanRate          float64
	PerfectCapacities int
}

// SummarizeByFunction aggregates results per function in order of first appearance
func SummarizeByFunction(results []CollisionResult) []FunctionSummary {
	index := make(map[string]int)
	var summaries []FunctionSummary

	for _, r := range results {
		i, ok := index[r.Function]
		if !ok {
			i = len(summaries)
			index[r.Function] = i
			summaries = append(summaries, FunctionSummary{
				Function:     r.Function,
				BestCapacity: r.Capacity.Size,
				BestRate:     r.Rate,
			})
		}

		s := &summaries[i]
		s.Evaluations++
		s.MeanRate += r.Rate
		if r.Rate < s.BestRate {
			s.BestRate = r.Rate
			s.BestCapacity = r.Capacity.Size
		}
		if r.Perfect() {
			s.PerfectCapacities++
		}
	}

	for i := range summaries {
		summaries[i].MeanRate /= float64(summaries[i].Evaluations)
	}
	return summaries
}

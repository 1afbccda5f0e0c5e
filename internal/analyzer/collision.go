package analyzer

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/hashfn"
)

// CollisionResult holds the outcome of one (function, capacity) evaluation
type CollisionResult struct {
	Function string
	Capacity Capacity

	// Corpus entries scanned and distinct buckets they landed in
	CorpusSize  int
	BucketsUsed int

	// Collisions is CorpusSize - BucketsUsed
	Collisions int

	// Rate is Collisions / CorpusSize, in [0, 1]
	Rate float64

	// ExpectedRate is the rate of an ideal uniform hash at this capacity
	ExpectedRate float64

	Duration time.Duration
}

// Perfect reports whether every entry landed in its own bucket
func (r CollisionResult) Perfect() bool {
	return r.Collisions == 0
}

// EvaluatorOption configures a CollisionEvaluator
type EvaluatorOption func(*evaluatorOptions)

type evaluatorOptions struct {
	dedupe bool
}

// WithDedupe drops repeated corpus entries, keeping first occurrences
func WithDedupe(dedupe bool) EvaluatorOption {
	return func(o *evaluatorOptions) {
		o.dedupe = dedupe
	}
}

// CollisionEvaluator measures collision rates of digest functions over a fixed corpus
type CollisionEvaluator struct {
	corpus     []string
	duplicates int
}

// NewCollisionEvaluator creates an evaluator over corpus. The corpus is copied
// and must not be empty.
func NewCollisionEvaluator(corpus []string, opts ...EvaluatorOption) (*CollisionEvaluator, error) {
	var options evaluatorOptions
	for _, opt := range opts {
		opt(&options)
	}

	if len(corpus) == 0 {
		return nil, domain.NewInvalidInputError("corpus is empty; collision rate is undefined", nil)
	}

	unique := make(map[string]struct{}, len(corpus))
	entries := make([]string, 0, len(corpus))
	for _, entry := range corpus {
		if _, seen := unique[entry]; seen {
			if options.dedupe {
				continue
			}
		} else {
			unique[entry] = struct{}{}
		}
		entries = append(entries, entry)
	}

	return &CollisionEvaluator{
		corpus:     entries,
		duplicates: len(corpus) - len(unique),
	}, nil
}

// Size returns the number of entries evaluated
func (e *CollisionEvaluator) Size() int {
	return len(e.corpus)
}

// Duplicates returns how many entries of the input corpus repeat an earlier one
func (e *CollisionEvaluator) Duplicates() int {
	return e.duplicates
}

// Corpus returns a copy of the evaluated entries
func (e *CollisionEvaluator) Corpus() []string {
	out := make([]string, len(e.corpus))
	copy(out, e.corpus)
	return out
}

// Digests computes fn over every entry in corpus order
func (e *CollisionEvaluator) Digests(fn hashfn.Func) []*big.Int {
	digests := make([]*big.Int, len(e.corpus))
	for i, entry := range e.corpus {
		digests[i] = fn.Sum(entry)
	}
	return digests
}

// Evaluate scans the corpus once with fn and reduces every digest into capacity
func (e *CollisionEvaluator) Evaluate(fn hashfn.Func, capacity Capacity) CollisionResult {
	start := time.Now()
	seen := make(map[uint64]string, len(e.corpus))
	for _, entry := range e.corpus {
		seen[capacity.Bucket(fn.Sum(entry))] = entry
	}
	return e.result(fn.Name, capacity, len(seen), time.Since(start))
}

// EvaluateDigests evaluates precomputed digests, one per corpus entry in order
func (e *CollisionEvaluator) EvaluateDigests(function string, digests []*big.Int, capacity Capacity) (CollisionResult, error) {
	if len(digests) != len(e.corpus) {
		return CollisionResult{}, domain.NewInvalidInputError(
			fmt.Sprintf("%s: got %d digests for %d corpus entries", function, len(digests), len(e.corpus)), nil)
	}

	start := time.Now()
	seen := make(map[uint64]string, len(e.corpus))
	for i, digest := range digests {
		// later entries overwrite earlier occupants
		seen[capacity.Bucket(digest)] = e.corpus[i]
	}
	return e.result(function, capacity, len(seen), time.Since(start)), nil
}

func (e *CollisionEvaluator) result(function string, capacity Capacity, buckets int, elapsed time.Duration) CollisionResult {
	n := len(e.corpus)
	return CollisionResult{
		Function:     function,
		Capacity:     capacity,
		CorpusSize:   n,
		BucketsUsed:  buckets,
		Collisions:   n - buckets,
		Rate:         float64(n-buckets) / float64(n),
		ExpectedRate: ExpectedCollisionRate(n, capacity.Size),
		Duration:     elapsed,
	}
}

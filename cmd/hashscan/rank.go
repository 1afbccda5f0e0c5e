package main

import (
	"fmt"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/config"
	"github.com/spf13/cobra"
)

// RankCommand represents the rank command
type RankCommand struct {
	collisionFlags

	hashes    []string
	extended  bool
	mode      string
	topK      int
	threshold float64
}

// NewRankCommand creates a new rank command
func NewRankCommand() *RankCommand {
	return &RankCommand{}
}

// CreateCobraCommand creates the cobra command for ranking
func (r *RankCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank [paths...]",
		Short: "Rank hash functions by collision rate",
		Long: `Evaluate every selected hash function at every capacity candidate and
report the lowest collision rates.

The corpus is read from the given files or directories, one entry per line.
Without paths the built-in corpus of 413 city names is used. Capacity
candidates default to the first 150 primes plus 2^9..2^14.

Examples:
  hashscan rank                          # Top 10 over the built-in corpus
  hashscan rank words.txt                # Rank over your own keys
  hashscan rank --mode threshold         # Every result below 0.10
  hashscan rank --hash djb2,sdbm --top 3 # Restrict the functions
  hashscan rank --extended --html        # All functions, HTML report
  hashscan rank --capacity 1021 --capacity 1024

Modes:
  top        - the K lowest rates (default, --top)
  threshold  - every rate strictly below --threshold
  all        - every result in evaluation order`,
		RunE: r.runRank,
	}

	cmd.Flags().StringSliceVar(&r.hashes, config.FlagHash, nil, "Hash functions to evaluate (default: the default set)")
	cmd.Flags().BoolVar(&r.extended, config.FlagExtended, false, "Evaluate every function in the catalog")
	cmd.Flags().StringVar(&r.mode, config.FlagMode, domain.DefaultRankMode, "Ranking mode (top|threshold|all)")
	cmd.Flags().IntVar(&r.topK, config.FlagTop, domain.DefaultTopK, "Number of results in top mode")
	cmd.Flags().Float64Var(&r.threshold, config.FlagThreshold, domain.DefaultRateThreshold, "Exclusive rate bound in threshold mode")
	r.register(cmd)

	return cmd
}

// runRank executes the rank command
func (r *RankCommand) runRank(cmd *cobra.Command, args []string) error {
	request, err := r.request(cmd, "rank", args)
	if err != nil {
		return err
	}
	request.Functions = r.hashes
	request.Extended = r.extended
	request.Mode = domain.RankMode(r.mode)
	request.TopK = r.topK
	request.Threshold = r.threshold

	useCase, err := newCollisionUseCase(cmd)
	if err != nil {
		return fmt.Errorf("failed to create collision use case: %w", err)
	}

	return useCase.Execute(cmd.Context(), request)
}

// NewRankCmd creates and returns the rank cobra command
func NewRankCmd() *cobra.Command {
	return NewRankCommand().CreateCobraCommand()
}

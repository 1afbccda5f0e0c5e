package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/logging"
	"github.com/ludo-technologies/hashscan/internal/version"
	"github.com/ludo-technologies/hashscan/service"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the hashscan command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hashscan",
		Short: "Measure string hash collision rates across table capacities",
		Long: `hashscan evaluates string hash functions by the collision rate they
produce when a corpus of keys is reduced into hash tables of many sizes.

Every selected function is evaluated at every capacity candidate: a prefix
of the primes plus a range of powers of two. Power-of-two capacities reduce
digests with a bit mask, all others with a modulo. Results are ranked by
collision rate.

Features:
  • Polynomial string hashes with unbounded digests
  • Fixed-width and library digests (murmur3, xxhash, highway, blake3, ...)
  • Built-in corpus of 413 city names
  • Text, JSON, YAML, CSV and HTML reports`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.ContextWithLogger(ctx, logging.GetLogger(verbosity)))
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v debug, -vv per evaluation)")

	rootCmd.AddCommand(NewRankCmd())
	rootCmd.AddCommand(NewEvalCmd())
	rootCmd.AddCommand(NewDigestCmd())
	rootCmd.AddCommand(NewHashesCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// reportError prints err with its category and recovery suggestions
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	categorized := service.NewErrorCategorizer().Categorize(err)
	if categorized == nil || categorized.Category == domain.ErrorCategoryUnknown {
		return
	}

	fmt.Fprintf(w, "\n%s\n", categorized.Message)
	fmt.Fprintf(w, "Suggestions:\n")
	for _, suggestion := range service.NewErrorCategorizer().GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  • %s\n", suggestion)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		stop()
		os.Exit(1)
	}
	stop()
}

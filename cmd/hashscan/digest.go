package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/config"
	"github.com/ludo-technologies/hashscan/service"
	"github.com/spf13/cobra"
)

// DigestCommand represents the digest command
type DigestCommand struct {
	hashes   []string
	extended bool
	json     bool
	yaml     bool
}

// NewDigestCommand creates a new digest command
func NewDigestCommand() *DigestCommand {
	return &DigestCommand{}
}

// CreateCobraCommand creates the cobra command for printing digests
func (d *DigestCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest [keys...]",
		Short: "Print raw digests of strings",
		Long: `Print the raw digest of each key under the selected hash functions.
Keys are read from standard input, one per line, when none are given.

Examples:
  hashscan digest Paris
  hashscan digest --hash alphabetical,djb2 foo bar
  hashscan digest --extended --json Paris`,
		RunE: d.runDigest,
	}

	cmd.Flags().StringSliceVar(&d.hashes, config.FlagHash, nil, "Hash functions (default: the default set)")
	cmd.Flags().BoolVar(&d.extended, config.FlagExtended, false, "Use every function in the catalog")
	cmd.Flags().BoolVar(&d.json, "json", false, "Print JSON")
	cmd.Flags().BoolVar(&d.yaml, "yaml", false, "Print YAML")

	return cmd
}

// runDigest executes the digest command
func (d *DigestCommand) runDigest(cmd *cobra.Command, args []string) error {
	format, _, err := service.NewOutputFormatResolver().Determine(false, d.json, false, d.yaml)
	if err != nil {
		return err
	}

	keys := args
	if len(keys) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if line := strings.TrimSuffix(scanner.Text(), "\r"); line != "" {
				keys = append(keys, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return domain.NewInvalidInputError("failed to read keys from stdin", err)
		}
	}

	entries, err := service.NewDigestService().Digest(cmd.Context(), domain.DigestRequest{
		Keys:      keys,
		Functions: d.hashes,
		Extended:  d.extended,
	})
	if err != nil {
		return fmt.Errorf("digest failed: %w", err)
	}

	return service.NewDigestFormatter().Write(entries, format, cmd.OutOrStdout())
}

// NewDigestCmd creates and returns the digest cobra command
func NewDigestCmd() *cobra.Command {
	return NewDigestCommand().CreateCobraCommand()
}

package main

import (
	"fmt"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/config"
	"github.com/ludo-technologies/hashscan/internal/hashfn"
	"github.com/spf13/cobra"
)

// EvalCommand represents the eval command
type EvalCommand struct {
	collisionFlags
}

// NewEvalCommand creates a new eval command
func NewEvalCommand() *EvalCommand {
	return &EvalCommand{}
}

// CreateCobraCommand creates the cobra command for a single-function evaluation
func (e *EvalCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <function> [paths...]",
		Short: "Evaluate one hash function at every capacity",
		Long: `Evaluate a single hash function at every capacity candidate and print
the full table in capacity order.

Examples:
  hashscan eval djb2
  hashscan eval sdbm --capacity 7 --capacity 8 words.txt
  hashscan eval fnv1a --summary`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runEval,
	}

	e.register(cmd)
	return cmd
}

// runEval executes the eval command
func (e *EvalCommand) runEval(cmd *cobra.Command, args []string) error {
	fn, err := hashfn.Lookup(args[0])
	if err != nil {
		return domain.NewInvalidInputError("invalid hash function", err)
	}

	request, err := e.request(cmd, "eval", args[1:])
	if err != nil {
		return err
	}
	request.Functions = []string{fn.Name}
	request.Mode = domain.RankModeAll
	request.ExplicitFlags[config.FlagHash] = true
	request.ExplicitFlags[config.FlagMode] = true

	useCase, err := newCollisionUseCase(cmd)
	if err != nil {
		return fmt.Errorf("failed to create collision use case: %w", err)
	}

	return useCase.Execute(cmd.Context(), request)
}

// NewEvalCmd creates and returns the eval cobra command
func NewEvalCmd() *cobra.Command {
	return NewEvalCommand().CreateCobraCommand()
}

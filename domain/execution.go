package domain

import (
	"context"
	"io"
	"time"
)

// ProgressManager reports evaluation progress. Implementations stay silent
// when the output is not a terminal.
type ProgressManager interface {
	// Initialize sets the number of expected increments
	Initialize(maxValue int)
	Start()
	Increment()
	// Complete finishes the bar; success=false leaves it incomplete
	Complete(success bool)
	SetWriter(writer io.Writer)
	IsInteractive() bool
	Close()
}

// ParallelExecutor runs independent tasks on a worker pool
type ParallelExecutor interface {
	// Execute blocks until every enabled task finished or ctx is done
	Execute(ctx context.Context, tasks []ExecutableTask) error

	// SetMaxConcurrency bounds the pool; values <= 0 mean one worker per CPU
	SetMaxConcurrency(max int)

	// SetTimeout bounds a whole Execute call; 0 disables it
	SetTimeout(timeout time.Duration)
}

// ExecutableTask is a unit of work for a ParallelExecutor
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (interface{}, error)
	IsEnabled() bool
}

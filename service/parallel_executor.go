package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ludo-technologies/hashscan/domain"
)

// ParallelExecutorImpl runs tasks on a bounded pool of workers
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
}

// NewParallelExecutor creates an executor with one worker per CPU and no timeout
func NewParallelExecutor() domain.ParallelExecutor {
	return &ParallelExecutorImpl{}
}

// Execute runs the enabled tasks and waits for them. Once ctx is done no
// further task is started; the first failure is returned.
func (pe *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	if len(tasks) == 0 {
		return nil
	}

	if pe.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pe.timeout)
		defer cancel()
	}

	workers := pe.workerCount(len(tasks))
	jobs := make(chan domain.ExecutableTask)
	errChan := make(chan error, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				// Check context before executing
				if err := ctx.Err(); err != nil {
					errChan <- fmt.Errorf("task %s cancelled: %w", t.Name(), err)
					continue
				}
				if _, err := t.Execute(ctx); err != nil {
					errChan <- fmt.Errorf("task %s failed: %w", t.Name(), err)
				}
			}
		}()
	}

feed:
	for _, task := range tasks {
		if !task.IsEnabled() {
			continue
		}
		select {
		case jobs <- task:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(errChan)

	if err := ctx.Err(); err != nil {
		if pe.timeout > 0 && err == context.DeadlineExceeded {
			return fmt.Errorf("parallel execution timed out after %v: %w", pe.timeout, err)
		}
		return fmt.Errorf("parallel execution cancelled: %w", err)
	}

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("parallel execution failed with %d errors: %w", len(errs), errs[0])
	}
	return nil
}

func (pe *ParallelExecutorImpl) workerCount(tasks int) int {
	workers := pe.maxConcurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > tasks {
		workers = tasks
	}
	return workers
}

// SetMaxConcurrency sets the worker count; 0 means one per CPU
func (pe *ParallelExecutorImpl) SetMaxConcurrency(max int) {
	pe.maxConcurrency = max
}

// SetTimeout bounds a whole Execute call; 0 disables the bound
func (pe *ParallelExecutorImpl) SetTimeout(timeout time.Duration) {
	pe.timeout = timeout
}

// SimpleTask is a basic implementation of ExecutableTask
type SimpleTask struct {
	name    string
	enabled bool
	execute func(context.Context) (interface{}, error)
}

// NewSimpleTask creates a new simple task
func NewSimpleTask(name string, enabled bool, execute func(context.Context) (interface{}, error)) domain.ExecutableTask {
	return &SimpleTask{
		name:    name,
		enabled: enabled,
		execute: execute,
	}
}

// Name returns the name of the task
func (t *SimpleTask) Name() string {
	return t.name
}

// Execute runs the task and returns the result
func (t *SimpleTask) Execute(ctx context.Context) (interface{}, error) {
	if t.execute == nil {
		return nil, fmt.Errorf("task %s has no execute function", t.name)
	}
	return t.execute(ctx)
}

// IsEnabled returns whether the task should be executed
func (t *SimpleTask) IsEnabled() bool {
	return t.enabled
}

package service

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

const progressThrottle = 65 * time.Millisecond

// ProgressManagerImpl shows a progress bar over evaluations on interactive terminals
type ProgressManagerImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	progressBar *progressbar.ProgressBar
	interactive bool
	maxValue    int
	current     int
}

// NewProgressManager creates a progress manager writing to stderr
func NewProgressManager() domain.ProgressManager {
	return &ProgressManagerImpl{
		writer:      os.Stderr,
		interactive: IsInteractiveEnvironment(),
	}
}

// Initialize sets the total number of evaluations
func (pm *ProgressManagerImpl) Initialize(maxValue int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.maxValue = maxValue
	pm.current = 0
}

// Start creates the progress bar when the output is interactive
func (pm *ProgressManagerImpl) Start() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.interactive && pm.progressBar == nil {
		pm.progressBar = pm.createProgressBar("Evaluating", pm.maxValue)
	}
}

// Increment advances the progress by one evaluation. Safe for concurrent use.
func (pm *ProgressManagerImpl) Increment() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.current++
	if pm.progressBar != nil {
		_ = pm.progressBar.Add(1)
	}
}

// Current returns the number of increments since Initialize
func (pm *ProgressManagerImpl) Current() int {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.current
}

// Complete finishes the progress bar; a failed run leaves it where it stopped
func (pm *ProgressManagerImpl) Complete(success bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar == nil {
		return
	}
	if success {
		_ = pm.progressBar.Finish()
	} else {
		_ = pm.progressBar.Exit()
	}
	pm.progressBar = nil
}

// SetWriter sets the output writer for progress bars
func (pm *ProgressManagerImpl) SetWriter(writer io.Writer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.writer = writer

	// Update interactivity check based on new writer
	if file, ok := writer.(*os.File); ok {
		pm.interactive = term.IsTerminal(int(file.Fd()))
	} else {
		pm.interactive = false
	}
}

// IsInteractive returns true if progress bars should be shown
func (pm *ProgressManagerImpl) IsInteractive() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	return pm.interactive
}

// Close cleans up any resources
func (pm *ProgressManagerImpl) Close() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar != nil {
		_ = pm.progressBar.Finish()
		pm.progressBar = nil
	}
}

func (pm *ProgressManagerImpl) createProgressBar(description string, max int) *progressbar.ProgressBar {
	writer := pm.writer
	if writer == nil {
		writer = io.Discard
	}

	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("eval"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(progressThrottle),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(writer)
		}),
	)
}

// IsInteractiveEnvironment reports whether stderr is a terminal outside CI
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

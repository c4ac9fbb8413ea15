package service

import (
	"io"
	"os"
	"sync"

	"github.com/pyvet/pyvet/domain"
	"github.com/schollz/progressbar/v3"
)

// ProgressManagerImpl renders check progress on stderr. Reports go to
// stdout, so a bar never interleaves with machine-readable output.
type ProgressManagerImpl struct {
	mu     sync.Mutex
	writer io.Writer
	bars   []*progressbar.ProgressBar
}

// NewProgressManager returns a live progress manager when progress is
// enabled and stderr is a terminal outside CI, a no-op one otherwise.
func NewProgressManager(enabled bool) domain.ProgressManager {
	if !enabled || !IsInteractiveEnvironment() {
		return &NoOpProgressManager{}
	}
	return &ProgressManagerImpl{writer: os.Stderr}
}

// StartTask begins tracking a unit of work with total steps. The bar is
// cleared from the terminal once the task completes.
func (pm *ProgressManagerImpl) StartTask(description string, total int) domain.TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(pm.writer),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)

	pm.mu.Lock()
	pm.bars = append(pm.bars, bar)
	pm.mu.Unlock()

	return &TaskProgressImpl{bar: bar}
}

// IsInteractive reports that this manager draws to a terminal
func (pm *ProgressManagerImpl) IsInteractive() bool {
	return true
}

// Close finishes any bars still running
func (pm *ProgressManagerImpl) Close() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for _, bar := range pm.bars {
		_ = bar.Finish()
	}
	pm.bars = nil
}

// TaskProgressImpl drives a single progress bar
type TaskProgressImpl struct {
	bar *progressbar.ProgressBar
}

// Increment advances the bar by n steps
func (tp *TaskProgressImpl) Increment(n int) {
	_ = tp.bar.Add(n)
}

// Describe replaces the bar's label, e.g. with the current check name
func (tp *TaskProgressImpl) Describe(description string) {
	tp.bar.Describe(description)
}

// Complete finishes the bar
func (tp *TaskProgressImpl) Complete() {
	_ = tp.bar.Finish()
}

// NoOpProgressManager satisfies ProgressManager without any output,
// used for CI, piped output and quiet runs.
type NoOpProgressManager struct{}

func (pm *NoOpProgressManager) StartTask(_ string, _ int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}

func (pm *NoOpProgressManager) IsInteractive() bool { return false }

func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress discards all progress updates
type NoOpTaskProgress struct{}

func (tp *NoOpTaskProgress) Increment(_ int)   {}
func (tp *NoOpTaskProgress) Describe(_ string) {}
func (tp *NoOpTaskProgress) Complete()         {}

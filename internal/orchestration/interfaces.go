package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/eulercalc/internal/euler"
)

// CalculationResult is the outcome of one calculator run.
type CalculationResult struct {
	// Name is the display name of the algorithm.
	Name string
	// Result is the rendered expansion, empty on error.
	Result string
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// Err is the failure, if any.
	Err error
}

// PresentationOptions configures how a result is presented.
type PresentationOptions struct {
	Places  int
	Round   bool
	Verbose bool
	Details bool
}

// ProgressReporter displays calculation progress. DisplayProgress runs in its
// own goroutine until progressChan is closed, then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan euler.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan euler.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan euler.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the progress channel silently.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan euler.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-algorithm summary.
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	// PresentResult displays the final expansion.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
	// HandleError reports err and returns the exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// Verifier checks expansions against the reference. *reference.Oracle
// implements it.
type Verifier interface {
	IsCorrect(candidate string) (bool, error)
	FirstCorrectPrefix(candidate string) (string, error)
}

// SweepObserver receives sweep progress.
type SweepObserver interface {
	// OnSweepProgress is called after every completed block of precisions.
	OnSweepProgress(p SweepProgress)
}

// SweepObserverFunc adapts a function to SweepObserver.
type SweepObserverFunc func(p SweepProgress)

// OnSweepProgress calls f.
func (f SweepObserverFunc) OnSweepProgress(p SweepProgress) { f(p) }

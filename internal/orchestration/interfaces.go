package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/mbenard/tricalc/internal/progress"
)

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// InputPath is the triangle source shown in verbose output.
	InputPath string
	// Verbose enables the per-rule timing table.
	Verbose bool
	// Details enables the supplemental analysis block.
	Details bool
	// Quiet reduces the output to bare values.
	Quiet bool
}

// ProgressReporter defines the interface for displaying evaluation
// progress. It decouples the orchestration layer from the presentation
// layer: implementations handle the visual representation (spinners,
// progress bars, log lines) while the orchestrator focuses on running the
// evaluations.
type ProgressReporter interface {
	// DisplayProgress starts consuming progress updates from the channel.
	// It should be called in a separate goroutine and must run until
	// progressChan is closed, then signal wg.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving updates from the evaluators.
	//   - numEvaluators: The number of concurrent evaluators being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEvaluators int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements
// ProgressReporter, allowing a bare function to be passed where a reporter
// is expected.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEvaluators int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEvaluators int, out io.Writer) {
	f(wg, progressChan, numEvaluators, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter. It
// drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ObserverReporter forwards every update to a progress subject, letting any
// registered observers (channels, logs) see the stream. Quiet mode uses it
// to keep progress visible in the debug log while nothing is drawn.
type ObserverReporter struct {
	Subject *progress.ProgressSubject
}

// DisplayProgress implements ProgressReporter.
func (r ObserverReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for update := range progressChan {
		r.Subject.Notify(update)
	}
}

// ResultPresenter defines the interface for presenting evaluation results.
// It decouples the orchestration layer from presentation concerns, allowing
// different output formats without modifying the orchestration logic.
type ResultPresenter interface {
	// PresentSummaryTable displays the per-rule timing summary.
	PresentSummaryTable(results []EvaluationResult, out io.Writer)

	// PresentResults displays the final value of each successful rule, in
	// input order.
	PresentResults(results []EvaluationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler maps evaluation errors to exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// Compile-time interface compliance checks.
var (
	_ ProgressReporter = NullProgressReporter{}
	_ ProgressReporter = ObserverReporter{}
	_ ProgressReporter = (ProgressReporterFunc)(nil)
)

package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/mbenard/tricalc/internal/errors"
	"github.com/mbenard/tricalc/internal/progress"
	"github.com/mbenard/tricalc/internal/triangle"
)

// EvaluationResult encapsulates the outcome of a single rule evaluation.
// It is the shared domain type between the orchestration and presentation
// layers.
type EvaluationResult struct {
	// Key is the rule's registry key (e.g. "max").
	Key string
	// Name is the rule's human-readable name.
	Name string
	// Value is the computed path value. It is meaningless when Err is set.
	Value int64
	// Duration is the time taken to complete the evaluation.
	Duration time.Duration
	// Err contains any error that occurred during the evaluation.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of dropped
// updates when the display is slow to consume them.
const ProgressBufferMultiplier = 5

// ExecuteEvaluations runs every evaluator against the triangle
// concurrently.
//
// It manages the lifecycle of the evaluation goroutines, collects their
// results, and coordinates the display of progress updates. Results are
// returned in the same order as the evaluators, regardless of which
// finishes first.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - evaluators: The evaluators to execute.
//   - t: The triangle to evaluate. Evaluators only read it, so one
//     triangle is safely shared by all of them.
//   - reporter: The progress reporter consuming updates (use
//     NullProgressReporter to discard them).
//   - out: The io.Writer for progress display.
//
// Returns:
//   - []EvaluationResult: One result per evaluator, in input order.
func ExecuteEvaluations(ctx context.Context, evaluators []triangle.Evaluator, t *triangle.Triangle, reporter ProgressReporter, out io.Writer) []EvaluationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]EvaluationResult, len(evaluators))
	progressChan := make(chan progress.ProgressUpdate, len(evaluators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(evaluators), out)

	for i, ev := range evaluators {
		idx, evaluator := i, ev
		g.Go(func() error {
			startTime := time.Now()
			value, err := evaluator.Evaluate(ctx, progressChan, idx, t)
			results[idx] = EvaluationResult{
				Key: evaluator.Key(), Name: evaluator.Name(), Value: value, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeResults presents the evaluation results and derives the process
// exit code.
//
// Every requested rule must succeed: unlike redundant algorithms computing
// one number, the rules here answer different questions, so a failed rule
// is a failed run even when the others completed. Successful results are
// still presented before the error is handled, and input order is
// preserved throughout.
//
// Parameters:
//   - results: The evaluation results, in evaluator input order.
//   - opts: Presentation options forwarded to the presenter.
//   - presenter: The result presenter for display formatting.
//   - errorHandler: Maps the first failure to an exit code.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeResults(results []EvaluationResult, opts PresentationOptions, presenter ResultPresenter, errorHandler ErrorHandler, out io.Writer) int {
	var firstErr error
	var firstErrDuration time.Duration
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstErr == nil {
				firstErr = results[i].Err
				firstErrDuration = results[i].Duration
			}
		} else {
			successCount++
		}
	}

	if opts.Verbose {
		presenter.PresentSummaryTable(results, out)
	}
	if successCount > 0 {
		presenter.PresentResults(results, opts, out)
	}

	if firstErr != nil {
		return errorHandler.HandleError(firstErr, firstErrDuration, out)
	}
	return apperrors.ExitSuccess
}

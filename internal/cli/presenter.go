package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/mbenard/tricalc/internal/errors"
	"github.com/mbenard/tricalc/internal/format"
	"github.com/mbenard/tricalc/internal/orchestration"
	"github.com/mbenard/tricalc/internal/progress"
	"github.com/mbenard/tricalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It wraps DisplayProgress to provide a spinner and progress bar
// during evaluations.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing evaluations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEvaluators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numEvaluators, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for the
// command-line interface, providing formatted, colorized output.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentSummaryTable displays the per-rule summary with durations and
// status in a tabular layout. Uses manual padding to correctly handle
// ANSI color codes.
func (CLIResultPresenter) PresentSummaryTable(results []orchestration.EvaluationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Rule Summary ---\n")

	// Find the column widths for proper alignment
	maxNameLen := 4     // "Rule" header length
	maxDurationLen := 8 // "Duration" header length
	for _, res := range results {
		if len(res.Name) > maxNameLen {
			maxNameLen = len(res.Name)
		}
		duration := formatTableDuration(res.Duration)
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	fmt.Fprintf(out, "%sRule%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-4),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s✗ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✓ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := formatTableDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// formatTableDuration renders a duration for the summary table, showing
// sub-microsecond times as a floor value instead of "0µs".
func formatTableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResults displays the final evaluation results: bare values in
// quiet mode, one sentence per rule otherwise.
func (CLIResultPresenter) PresentResults(results []orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietResults(out, results)
		return
	}
	DisplayResults(out, results)
}

// HandleError prints a diagnostic for an evaluation error and returns
// the process exit code matching its category.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	code := apperrors.ExitCodeFor(err)

	switch code {
	case apperrors.ExitErrorCanceled:
		fmt.Fprintf(out, "%sEvaluation canceled after %s.%s\n",
			ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
	case apperrors.ExitErrorTimeout:
		fmt.Fprintf(out, "%sEvaluation timed out after %s: %v%s\n",
			ui.ColorRed(), format.FormatExecutionDuration(duration), err, ui.ColorReset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return code
}

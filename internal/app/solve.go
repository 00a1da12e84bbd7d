package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/mbenard/tricalc/internal/cli"
	apperrors "github.com/mbenard/tricalc/internal/errors"
	"github.com/mbenard/tricalc/internal/logging"
	"github.com/mbenard/tricalc/internal/metrics"
	"github.com/mbenard/tricalc/internal/orchestration"
	"github.com/mbenard/tricalc/internal/progress"
	"github.com/mbenard/tricalc/internal/triangle"
)

// tracerName identifies this instrumentation scope. Spans are no-ops
// unless the embedding process installs an OpenTelemetry SDK.
const tracerName = "tricalc"

// withLifecycle derives the run context: bounded by the configured
// timeout and cancelled on SIGINT or SIGTERM.
func (a *Application) withLifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// loadTriangle opens and parses the configured input file. A file that
// parses to zero rows is rejected here so every downstream consumer can
// rely on a non-empty triangle.
func (a *Application) loadTriangle() (*triangle.Triangle, time.Duration, error) {
	start := time.Now()

	f, err := os.Open(a.Config.InputPath)
	if err != nil {
		return nil, 0, apperrors.FileError{Path: a.Config.InputPath, Err: err}
	}
	defer f.Close()

	tri, err := triangle.ParseLimit(f, a.Config.MaxRows)
	if err != nil {
		return nil, 0, err
	}
	if tri.Height() == 0 {
		return nil, 0, apperrors.WrapError(triangle.ErrEmptyTriangle, "no rows in %q", a.Config.InputPath)
	}
	return tri, time.Since(start), nil
}

// runSolve orchestrates the one-shot evaluation: load the triangle, run
// the selected rules, present the results, and derive the exit code.
func (a *Application) runSolve(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "solve")
	defer span.End()

	tri, parseDur, err := a.loadTriangle()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	span.SetAttributes(
		attribute.String("triangle.file", a.Config.InputPath),
		attribute.Int("triangle.rows", tri.Height()),
		attribute.String("rule", a.Config.Rule),
	)
	a.Log.Debug("triangle loaded",
		logging.String("file", a.Config.InputPath),
		logging.Int("rows", tri.Height()),
		logging.Int64("parse_us", parseDur.Microseconds()))

	evaluators := orchestration.GetEvaluatorsToRun(a.Config.Rule, a.Factory)
	if len(evaluators) == 0 {
		err := apperrors.NewConfigError("no evaluator registered for rule %q", a.Config.Rule)
		span.RecordError(err)
		span.SetStatus(codes.Error, "no evaluators")
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		if a.Config.Verbose {
			cli.DisplayRunConfig(a.Config, out)
			cli.DisplayRunMode(evaluators, out)
		}
		fmt.Fprintln(out, cli.FormatLoadedLine(tri.Height()))
	}

	// Progress rendering goes to stderr so stdout stays clean for the
	// result sentences and quiet-mode values. Quiet mode suppresses the
	// spinner but still routes updates to the debug log.
	var reporter orchestration.ProgressReporter
	progressOut := a.ErrWriter
	if a.Config.Quiet {
		subject := progress.NewProgressSubject()
		subject.Register(progress.NewLoggingObserver(a.Log))
		reporter = orchestration.ObserverReporter{Subject: subject}
		progressOut = io.Discard
	} else {
		reporter = cli.CLIProgressReporter{}
	}

	collector := metrics.NewMemoryCollector()
	var memBefore metrics.MemorySnapshot
	if a.Config.Details {
		memBefore = collector.Snapshot()
	}

	evalCtx, evalSpan := tracer.Start(ctx, "evaluate")
	evalStart := time.Now()
	results := orchestration.ExecuteEvaluations(evalCtx, evaluators, tri, reporter, progressOut)
	evalSpan.SetAttributes(attribute.Int("rules", len(evaluators)))
	evalSpan.End()

	a.Log.Debug("evaluation finished",
		logging.Int("rules", len(results)),
		logging.Int64("elapsed_us", time.Since(evalStart).Microseconds()))

	presOpts := orchestration.PresentationOptions{
		InputPath: a.Config.InputPath,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		Quiet:     a.Config.Quiet,
	}
	presenter := cli.CLIResultPresenter{}
	exitCode := orchestration.AnalyzeResults(results, presOpts, presenter, presenter, out)
	if exitCode != apperrors.ExitSuccess {
		span.SetStatus(codes.Error, "evaluation failed")
	}

	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayTriangleDetails(tri, out)
		cli.DisplayMemoryStats(memBefore, collector.Snapshot(), out)
	}

	if code := a.writeMetricsIfNeeded(tri, parseDur, results); code != apperrors.ExitSuccess && exitCode == apperrors.ExitSuccess {
		exitCode = code
	}

	if exitCode == apperrors.ExitSuccess && a.Config.OutputFile != "" {
		outputCfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: a.Config.Quiet}
		if err := cli.WriteResultsToFile(results, a.Config.InputPath, tri.Height(), outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			cli.DisplaySavedMessage(out, a.Config.OutputFile)
		}
	}

	return exitCode
}

// writeMetricsIfNeeded records the run in a process-local Prometheus
// registry and writes it in text exposition format when --metrics-out
// is set.
func (a *Application) writeMetricsIfNeeded(tri *triangle.Triangle, parseDur time.Duration, results []orchestration.EvaluationResult) int {
	if a.Config.MetricsOut == "" {
		return apperrors.ExitSuccess
	}

	rm := metrics.NewRunMetrics()
	rm.ObserveParse(parseDur)
	rm.ObserveTriangle(tri.Height(), tri.Cells())
	for _, res := range results {
		rm.ObserveEvaluation(res.Key, res.Duration, res.Err)
	}

	if err := rm.WriteTextfile(a.Config.MetricsOut); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

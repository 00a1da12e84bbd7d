package tui

import (
	"time"

	"github.com/mbenard/tricalc/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update from the evaluation
// goroutines into the bubbletea event loop.
type ProgressMsg struct {
	// EvaluatorIndex identifies the evaluator that reported.
	EvaluatorIndex int
	// Value is that evaluator's own progress in [0, 1].
	Value float64
	// AverageProgress is the mean across all running evaluators.
	AverageProgress float64
	// ETA estimates the remaining time from the smoothed progress rate.
	ETA time.Duration
}

// ProgressDoneMsg signals that the progress channel closed.
type ProgressDoneMsg struct{}

// ResultsMsg delivers the evaluation results to the dashboard.
type ResultsMsg struct {
	Results []orchestration.EvaluationResult
}

// ErrorMsg reports an evaluation failure.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic refresh (elapsed timer, stat sampling).
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	HeapAlloc    uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	Goroutines   int
}

// SysStatsMsg carries a system-wide load sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	MemUsed    uint64
	Goroutines int
}

// EvaluationCompleteMsg signals that the whole evaluation batch finished.
// Generation guards against stale messages after a restart.
type EvaluationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the evaluation context ended.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

package orchestration

import (
	"time"

	"github.com/mbenard/tricalc/internal/format"
	"github.com/mbenard/tricalc/internal/progress"
)

// ProgressAggregator manages multi-evaluator progress aggregation. It wraps
// format.ProgressWithETA and provides a higher-level API for consuming
// progress updates from a channel. Both the CLI and the TUI use this to
// avoid duplicating the aggregation setup and update logic.
type ProgressAggregator struct {
	state         *format.ProgressWithETA
	numEvaluators int
}

// NewProgressAggregator creates a new aggregator for the given number of
// evaluators. Returns nil if numEvaluators <= 0.
func NewProgressAggregator(numEvaluators int) *ProgressAggregator {
	if numEvaluators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:         format.NewProgressWithETA(numEvaluators),
		numEvaluators: numEvaluators,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// EvaluatorIndex is the index of the evaluator that sent the update.
	EvaluatorIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all evaluators.
	AverageProgress float64
	// ETA is the estimated time remaining based on the smoothed progress
	// rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated
// result.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.EvaluatorIndex, update.Value)
	return AggregatedProgress{
		EvaluatorIndex:  update.EvaluatorIndex,
		Value:           update.Value,
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
// Useful for periodic refresh between updates (e.g. a display ticker).
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumEvaluators returns the number of evaluators being tracked.
func (a *ProgressAggregator) NumEvaluators() int {
	return a.numEvaluators
}

// IsMultiEvaluator returns true if tracking more than one evaluator.
func (a *ProgressAggregator) IsMultiEvaluator() bool {
	return a.numEvaluators > 1
}

// DrainChannel reads all updates from the channel without processing. Use
// this when no aggregation is wanted and updates should be discarded.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}

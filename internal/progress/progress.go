// Package progress defines the progress reporting types shared by the
// evaluators, the orchestrator, and the display layers. Evaluators publish
// fractional updates; observers fan them out to channels, logs, or nothing.
package progress

import (
	"sync"

	"github.com/mbenard/tricalc/internal/logging"
)

// ProgressUpdate carries a fractional progress report from one evaluator.
type ProgressUpdate struct {
	// EvaluatorIndex identifies which evaluator this update belongs to.
	EvaluatorIndex int
	// Value is the fractional completion in [0, 1].
	Value float64
}

// ProgressCallback receives fractional progress values in [0, 1].
type ProgressCallback func(value float64)

// ProgressObserver is notified of every published update.
type ProgressObserver interface {
	OnProgress(update ProgressUpdate)
}

// ProgressSubject fans updates out to registered observers. It is safe for
// concurrent use by multiple evaluator goroutines.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates an empty subject.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Notify publishes an update to every registered observer in registration
// order.
func (s *ProgressSubject) Notify(update ProgressUpdate) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.OnProgress(update)
	}
}

// ChannelObserver forwards updates into a channel. Sends never block: when
// the channel is full the update is dropped, since progress is advisory.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver creates an observer forwarding to ch.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnProgress implements ProgressObserver.
func (o *ChannelObserver) OnProgress(update ProgressUpdate) {
	select {
	case o.ch <- update:
	default:
	}
}

// LoggingObserver logs progress at debug level, throttled to whole-percent
// transitions so a chatty evaluator cannot flood the log.
type LoggingObserver struct {
	logger  logging.Logger
	mu      sync.Mutex
	lastPct map[int]int
}

// NewLoggingObserver creates an observer logging through the given logger.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{
		logger:  logger,
		lastPct: make(map[int]int),
	}
}

// OnProgress implements ProgressObserver.
func (o *LoggingObserver) OnProgress(update ProgressUpdate) {
	pct := int(update.Value * 100)
	o.mu.Lock()
	last, seen := o.lastPct[update.EvaluatorIndex]
	if seen && last == pct {
		o.mu.Unlock()
		return
	}
	o.lastPct[update.EvaluatorIndex] = pct
	o.mu.Unlock()

	o.logger.Debug("evaluation progress",
		logging.Int("evaluator", update.EvaluatorIndex),
		logging.Int("percent", pct),
	)
}

// NoOpObserver discards all updates.
type NoOpObserver struct{}

// NewNoOpObserver creates an observer that ignores everything.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// OnProgress implements ProgressObserver.
func (NoOpObserver) OnProgress(ProgressUpdate) {}

// Compile-time interface compliance checks.
var (
	_ ProgressObserver = (*ChannelObserver)(nil)
	_ ProgressObserver = (*LoggingObserver)(nil)
	_ ProgressObserver = NoOpObserver{}
)

// ReportRowProgress invokes cb with the fraction of rows folded so far.
// It tolerates a nil callback and a zero row count.
func ReportRowProgress(cb ProgressCallback, rowsDone, totalRows int) {
	if cb == nil || totalRows <= 0 {
		return
	}
	value := float64(rowsDone) / float64(totalRows)
	if value > 1 {
		value = 1
	}
	cb(value)
}

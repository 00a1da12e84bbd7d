// Progress state tracking and rendering shared by the CLI and REPL surfaces.

package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// maxETA caps estimates so a stalled rate never reports absurd values.
	maxETA = 24 * time.Hour

	// etaSmoothing weights the newest rate sample against the running rate.
	etaSmoothing = 0.3
)

// ProgressState tracks fractional completion for a set of workers and
// aggregates them into a single average.
type ProgressState struct {
	mu         sync.Mutex
	numWorkers int
	progresses []float64
}

// NewProgressState creates a ProgressState for numWorkers workers.
// All progress values start at zero.
func NewProgressState(numWorkers int) *ProgressState {
	if numWorkers < 0 {
		numWorkers = 0
	}
	return &ProgressState{
		numWorkers: numWorkers,
		progresses: make([]float64, numWorkers),
	}
}

// Update records the progress value (clamped to [0, 1]) for the worker at
// index. Out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	ps.progresses[index] = value
}

// CalculateAverage returns the mean progress across all workers, or 0 when
// there are none.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.numWorkers == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numWorkers)
}

// ProgressWithETA extends ProgressState with a smoothed completion-rate
// estimate so displays can show a time remaining.
type ProgressWithETA struct {
	*ProgressState
	numWorkers   int
	progressRate float64 // fraction completed per second, smoothed
	startTime    time.Time
	lastUpdate   time.Time
	lastAverage  float64
}

// NewProgressWithETA creates an ETA-capable progress tracker for numWorkers
// workers.
func NewProgressWithETA(numWorkers int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numWorkers),
		numWorkers:    numWorkers,
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a progress value and returns the new aggregate
// progress together with the current ETA estimate.
//
// Parameters:
//   - index: Worker index (out-of-range values are ignored).
//   - value: Fractional progress in [0, 1].
//
// Returns:
//   - float64: The aggregate progress after the update.
//   - time.Duration: The estimated time remaining (0 while unknown).
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	average := p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	if elapsed > 0 && average > p.lastAverage {
		instant := (average - p.lastAverage) / elapsed
		if p.progressRate == 0 {
			p.progressRate = instant
		} else {
			p.progressRate = etaSmoothing*instant + (1-etaSmoothing)*p.progressRate
		}
		p.lastUpdate = now
		p.lastAverage = average
	}

	return average, p.GetETA()
}

// GetETA returns the estimated time remaining based on the smoothed rate,
// capped at maxETA. It returns 0 when no rate has been observed yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		eta = maxETA
	}
	return eta
}

// FormatETA renders an ETA compactly: "calculating..." while unknown,
// "< 1s" below one second, then the largest two relevant units ("45s",
// "2m30s", "1h15m").
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	hours := int(eta.Hours())
	minutes := int(eta.Minutes()) % 60
	seconds := int(eta.Seconds()) % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0 && seconds > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatProgressBarWithETA renders a bar of the given width followed by the
// percentage and the formatted ETA.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

// ProgressBar renders progress as length cells of filled/unfilled blocks.
// Progress is clamped to [0, 1].
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	if filled > length {
		filled = length
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatNumberString inserts thousand separators into a decimal integer
// string, preserving a leading minus sign.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' {
		sign = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	var sb strings.Builder
	head := n % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sign + sb.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

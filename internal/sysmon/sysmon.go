// Package sysmon provides system-wide CPU and memory usage sampling,
// plus a periodic monitor with bounded history for the dashboard.
package sysmon

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system resource usage.
type Stats struct {
	CPUPercent float64   // 0.0 .. 100.0
	MemPercent float64   // 0.0 .. 100.0
	MemUsed    uint64    // bytes of used system memory
	Goroutines int       // goroutines in this process
	Taken      time.Time // when the sample was collected
}

// Sample collects a single system-wide snapshot. CPU uses interval=0
// (delta since last call). Returns zero values on error.
func Sample() Stats {
	s := Stats{
		Goroutines: runtime.NumGoroutine(),
		Taken:      time.Now(),
	}
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemUsed = vmem.Used
	}
	return s
}

// Monitor samples periodically and retains a bounded history window.
type Monitor struct {
	interval time.Duration
	capacity int

	mu      sync.Mutex
	history []Stats // oldest first
}

// NewMonitor creates a monitor sampling every interval and remembering
// the last capacity samples. Non-positive arguments fall back to one
// second and sixty samples.
func NewMonitor(interval time.Duration, capacity int) *Monitor {
	if interval <= 0 {
		interval = time.Second
	}
	if capacity <= 0 {
		capacity = 60
	}
	return &Monitor{
		interval: interval,
		capacity: capacity,
		history:  make([]Stats, 0, capacity),
	}
}

// Run samples until ctx is canceled. One sample is recorded immediately
// so callers see data before the first tick.
func (m *Monitor) Run(ctx context.Context) {
	m.record(Sample())
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.record(Sample())
		}
	}
}

func (m *Monitor) record(s Stats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.history) == m.capacity {
		copy(m.history, m.history[1:])
		m.history[len(m.history)-1] = s
		return
	}
	m.history = append(m.history, s)
}

// Latest returns the most recent sample, and false when none exists.
func (m *Monitor) Latest() (Stats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.history) == 0 {
		return Stats{}, false
	}
	return m.history[len(m.history)-1], true
}

// History returns a copy of the retained samples, oldest first.
func (m *Monitor) History() []Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Stats, len(m.history))
	copy(out, m.history)
	return out
}

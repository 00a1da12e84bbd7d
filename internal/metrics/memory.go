// Package metrics collects runtime and process measurements for a run:
// Go heap snapshots for the details block, peak RSS where the platform
// reports it, and a process-local Prometheus registry for --metrics-out.
package metrics

import (
	"fmt"
	"runtime"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryDelta is the allocation growth between two snapshots.
type MemoryDelta struct {
	AllocBytes uint64 // bytes allocated in the interval
	GCCycles   uint32 // GC cycles completed in the interval
	PauseNs    uint64 // GC pause time accrued in the interval
}

// Delta reports the growth from since to s. The snapshots must come
// from the same process, taken with s after since.
func (s MemorySnapshot) Delta(since MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		AllocBytes: s.TotalAlloc - since.TotalAlloc,
		GCCycles:   s.NumGC - since.NumGC,
		PauseNs:    s.PauseTotalNs - since.PauseTotalNs,
	}
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// FormatBytes renders a byte count in binary units, e.g. "1.50 MiB".
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

//go:build linux || darwin

package metrics

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// MaxRSSBytes returns the peak resident set size of the process, and
// whether the platform reports one. Linux counts in KiB, darwin in
// bytes.
func MaxRSSBytes() (uint64, bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, false
	}
	rss := uint64(ru.Maxrss)
	if runtime.GOOS == "linux" {
		rss *= 1024
	}
	return rss, true
}

//go:build !linux && !darwin

package metrics

// MaxRSSBytes is not available on this platform.
func MaxRSSBytes() (uint64, bool) {
	return 0, false
}

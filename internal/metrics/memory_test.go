package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
	if snap.TotalAlloc < snap.HeapAlloc {
		t.Error("TotalAlloc should be at least HeapAlloc")
	}
}

func TestMemorySnapshot_Delta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()

	buf := make([]byte, 1024*1024)
	for i := range buf {
		buf[i] = byte(i)
	}
	_ = buf

	after := mc.Snapshot()
	d := after.Delta(before)

	if after.Sys < before.Sys {
		t.Error("Sys should not decrease between snapshots")
	}
	if d.AllocBytes == 0 {
		t.Error("AllocBytes should grow after a 1 MiB allocation")
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{1024 * 1024, "1.00 MiB"},
		{3 * 1024 * 1024 * 1024, "3.00 GiB"},
	}
	for _, tc := range cases {
		if got := FormatBytes(tc.in); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

package tui

import (
	"testing"
)

func TestRingBuffer_PushAndSlice(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Push(2)
	rb.Push(3)

	got := rb.Slice()
	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_Overflow(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Push(2)
	rb.Push(3)
	rb.Push(4) // overwrites 1

	got := rb.Slice()
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_Last(t *testing.T) {
	rb := NewRingBuffer(5)
	if rb.Last() != 0 {
		t.Error("expected 0 for empty buffer")
	}
	rb.Push(10)
	rb.Push(20)
	rb.Push(30)
	if rb.Last() != 30 {
		t.Errorf("expected 30, got %f", rb.Last())
	}
}

func TestRingBuffer_Last_AfterOverflow(t *testing.T) {
	rb := NewRingBuffer(2)
	rb.Push(10)
	rb.Push(20)
	rb.Push(30) // overwrites 10
	if rb.Last() != 30 {
		t.Errorf("expected 30, got %f", rb.Last())
	}
}

func TestRingBuffer_Reset(t *testing.T) {
	rb := NewRingBuffer(5)
	rb.Push(1)
	rb.Push(2)
	rb.Reset()

	if rb.Len() != 0 {
		t.Errorf("expected len 0, got %d", rb.Len())
	}
	if rb.Slice() != nil {
		t.Error("expected nil slice after reset")
	}
}

func TestRingBuffer_Resize_Grow(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Push(2)
	rb.Push(3)
	rb.Resize(5)

	if rb.Cap() != 5 {
		t.Errorf("expected cap 5, got %d", rb.Cap())
	}
	got := rb.Slice()
	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_Resize_Shrink(t *testing.T) {
	rb := NewRingBuffer(5)
	rb.Push(1)
	rb.Push(2)
	rb.Push(3)
	rb.Push(4)
	rb.Push(5)
	rb.Resize(3) // keep most recent: 3, 4, 5

	got := rb.Slice()
	want := []float64{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_ZeroCapacity(t *testing.T) {
	rb := NewRingBuffer(0)
	if rb.Cap() != 1 {
		t.Errorf("expected min cap 1, got %d", rb.Cap())
	}
	rb.Push(42)
	if rb.Last() != 42 {
		t.Errorf("expected 42, got %f", rb.Last())
	}
}

func TestRingBuffer_Resize_SameCapacity(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Push(2)
	rb.Resize(3) // no-op

	if rb.Len() != 2 {
		t.Errorf("expected len 2 after same-cap resize, got %d", rb.Len())
	}
}

func TestRenderSparkline_Empty(t *testing.T) {
	got := RenderSparkline(nil)
	if got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestRenderSparkline_AllZero(t *testing.T) {
	got := RenderSparkline([]float64{0, 0, 0})
	runes := []rune(got)
	for i, r := range runes {
		if r != '▁' {
			t.Errorf("index %d: expected '▁', got %c", i, r)
		}
	}
}

func TestRenderSparkline_AllMax(t *testing.T) {
	got := RenderSparkline([]float64{100, 100, 100})
	runes := []rune(got)
	for i, r := range runes {
		if r != '█' {
			t.Errorf("index %d: expected '█', got %c", i, r)
		}
	}
}

func TestRenderSparkline_Gradient(t *testing.T) {
	values := []float64{0, 14.3, 28.6, 42.9, 57.1, 71.4, 85.7, 100}
	got := RenderSparkline(values)
	runes := []rune(got)
	if len(runes) != 8 {
		t.Fatalf("expected 8 chars, got %d", len(runes))
	}
	// Should be strictly ascending
	for i := 1; i < len(runes); i++ {
		if runes[i] < runes[i-1] {
			t.Errorf("expected ascending at index %d: %c < %c", i, runes[i], runes[i-1])
		}
	}
}

func TestRenderSparkline_Clamping(t *testing.T) {
	got := RenderSparkline([]float64{-10, 150})
	runes := []rune(got)
	if runes[0] != '▁' {
		t.Errorf("negative not clamped to min: got %c", runes[0])
	}
	if runes[1] != '█' {
		t.Errorf("over-100 not clamped to max: got %c", runes[1])
	}
}

func TestRenderSparkline_MidValue(t *testing.T) {
	got := RenderSparkline([]float64{50})
	runes := []rune(got)
	// 50/100 * 7 = 3.5 -> index 3 -> '▄'
	if runes[0] != '▄' {
		t.Errorf("expected '▄' for 50%%, got %c", runes[0])
	}
}

func TestScaleTo100(t *testing.T) {
	got := ScaleTo100([]float64{5, 10, 15})
	want := []float64{0, 50, 100}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestScaleTo100_ConstantSeries(t *testing.T) {
	got := ScaleTo100([]float64{7, 7, 7})
	for i, v := range got {
		if v != 100 {
			t.Errorf("index %d: expected 100 for a constant series, got %f", i, v)
		}
	}
}

func TestScaleTo100_Empty(t *testing.T) {
	if got := ScaleTo100(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestDownsample_KeepsPeaks(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	got := Downsample(values, 5)
	want := []float64{2, 4, 6, 8, 10}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestDownsample_FitsAlready(t *testing.T) {
	values := []float64{1, 2, 3}
	got := Downsample(values, 10)
	if len(got) != 3 {
		t.Fatalf("expected unchanged length 3, got %d", len(got))
	}
	got[0] = 99
	if values[0] == 99 {
		t.Error("Downsample must copy, not alias, the input")
	}
}

func TestDownsample_ZeroBuckets(t *testing.T) {
	if got := Downsample([]float64{1, 2}, 0); got != nil {
		t.Errorf("expected nil for zero buckets, got %v", got)
	}
}

func TestRenderBrailleChart_Empty(t *testing.T) {
	if got := RenderBrailleChart(nil, 10, 2); got != nil {
		t.Errorf("expected nil for no values, got %v", got)
	}
	if got := RenderBrailleChart([]float64{1}, 0, 2); got != nil {
		t.Errorf("expected nil for zero width, got %v", got)
	}
	if got := RenderBrailleChart([]float64{1}, 10, 0); got != nil {
		t.Errorf("expected nil for zero rows, got %v", got)
	}
}

func TestRenderBrailleChart_Dimensions(t *testing.T) {
	lines := RenderBrailleChart([]float64{0, 25, 50, 75, 100}, 6, 3)
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 6 {
			t.Errorf("row %d: expected 6 columns, got %d", i, n)
		}
	}
}

func TestRenderBrailleChart_RightAligned(t *testing.T) {
	// A single zero-valued sample lands in the bottom-right character cell.
	lines := RenderBrailleChart([]float64{0}, 4, 2)
	bottom := []rune(lines[1])
	if bottom[3] == 0x2800 {
		t.Error("expected a dot in the bottom-right cell")
	}
	for _, r := range lines[0] {
		if r != 0x2800 {
			t.Error("expected the top row to be empty for a zero value")
			break
		}
	}
}

package triangle

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestFold_EmptyTriangle(t *testing.T) {
	leaf := func(v int64) int64 { return v }
	combine := func(v, l, r int64) int64 { return v + max(l, r) }

	if _, err := Fold(New(), leaf, combine); !errors.Is(err, ErrEmptyTriangle) {
		t.Errorf("Fold(empty) error = %v, want ErrEmptyTriangle", err)
	}
	if _, err := Fold(nil, leaf, combine); !errors.Is(err, ErrEmptyTriangle) {
		t.Errorf("Fold(nil) error = %v, want ErrEmptyTriangle", err)
	}
}

func TestFold_SingleRow(t *testing.T) {
	tri := mustTriangle(t, [][]int64{{7}})
	combines := 0
	got, err := Fold(tri,
		func(v int64) int64 { return v * 10 },
		func(v, l, r int64) int64 { combines++; return 0 },
	)
	if err != nil {
		t.Fatalf("Fold: %v", err)
	}
	if got != 70 {
		t.Errorf("Fold = %d, want the leaf of the only cell (70)", got)
	}
	if combines != 0 {
		t.Errorf("combine ran %d times on a single-row triangle, want 0", combines)
	}
}

func TestFold_CallCounts(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int64
	}{
		{"one row", [][]int64{{1}}},
		{"two rows", [][]int64{{1}, {2, 3}}},
		{"four rows", smallRows()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tri := mustTriangle(t, tc.rows)
			leaves, combines := 0, 0
			_, err := Fold(tri,
				func(v int64) int64 { leaves++; return v },
				func(v, l, r int64) int64 { combines++; return v + max(l, r) },
			)
			if err != nil {
				t.Fatalf("Fold: %v", err)
			}
			if got, want := leaves, tri.Width(); got != want {
				t.Errorf("leaf calls = %d, want %d (one per bottom cell)", got, want)
			}
			if got, want := combines, tri.Cells()-tri.Width(); got != want {
				t.Errorf("combine calls = %d, want %d (one per remaining cell)", got, want)
			}
		})
	}
}

// TestFold_ChildWiring folds into expression strings so the exact pairing of
// each cell with its two children is visible in the apex result.
func TestFold_ChildWiring(t *testing.T) {
	tri := mustTriangle(t, [][]int64{{1}, {2, 3}, {4, 5, 6}})
	got, err := Fold(tri,
		func(v int64) string { return fmt.Sprintf("%d", v) },
		func(v int64, l, r string) string { return fmt.Sprintf("(%d %s %s)", v, l, r) },
	)
	if err != nil {
		t.Fatalf("Fold: %v", err)
	}
	want := "(1 (2 4 5) (3 5 6))"
	if got != want {
		t.Errorf("Fold = %q, want %q", got, want)
	}
}

func TestFold_DoesNotModifyTriangle(t *testing.T) {
	tri := mustTriangle(t, smallRows())
	_, err := Fold(tri,
		func(v int64) int64 { return v },
		func(v, l, r int64) int64 { return v + max(l, r) },
	)
	if err != nil {
		t.Fatalf("Fold: %v", err)
	}
	if !reflect.DeepEqual(tri.Rows(), smallRows()) {
		t.Error("Fold modified the triangle")
	}
}

func TestFold_RowHook(t *testing.T) {
	tri := mustTriangle(t, smallRows())
	type step struct{ done, total int }
	var steps []step
	_, err := fold(tri,
		func(v int64) int64 { return v },
		func(v, l, r int64) int64 { return v + max(l, r) },
		func(done, total int) error {
			steps = append(steps, step{done, total})
			return nil
		},
	)
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	want := []step{{1, 4}, {2, 4}, {3, 4}, {4, 4}}
	if !reflect.DeepEqual(steps, want) {
		t.Errorf("row hook calls = %v, want %v", steps, want)
	}
}

func TestFold_RowHookAbort(t *testing.T) {
	tri := mustTriangle(t, smallRows())
	abort := errors.New("stop")
	combines := 0
	got, err := fold(tri,
		func(v int64) int64 { return v },
		func(v, l, r int64) int64 { combines++; return v + max(l, r) },
		func(done, total int) error { return abort },
	)
	if !errors.Is(err, abort) {
		t.Fatalf("fold error = %v, want the hook's error", err)
	}
	if got != 0 {
		t.Errorf("aborted fold returned %d, want the zero value", got)
	}
	if combines != 0 {
		t.Errorf("combine ran %d times after an abort on the bottom row, want 0", combines)
	}
}

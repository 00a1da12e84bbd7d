package triangle

import (
	"errors"
	"reflect"
	"testing"
)

// smallRows returns the four-row walkthrough triangle used across the test
// suite. Its maximum path is 3+7+4+9 = 23 and its odd-even constrained
// maximum is 10.
func smallRows() [][]int64 {
	return [][]int64{
		{3},
		{7, 4},
		{2, 4, 6},
		{8, 5, 9, 3},
	}
}

// euler18Text is the classic 15-row puzzle triangle. Its maximum path sum
// is 1074.
const euler18Text = `75
95 64
17 47 82
18 35 87 10
20 04 82 47 65
19 01 23 75 03 34
88 02 77 73 07 63 67
99 65 04 28 06 16 70 92
41 41 26 56 83 40 80 70 33
41 48 72 33 47 32 37 16 94 29
53 71 44 65 25 43 91 52 97 51 14
70 11 33 28 77 73 17 78 39 68 17 57
91 71 52 38 17 14 91 43 58 50 27 29 48
63 66 04 68 89 53 67 30 73 16 69 87 40 31
04 62 98 27 23 09 70 98 73 93 38 53 60 04 23`

// mustTriangle builds a triangle from rows, failing the test on shape errors.
func mustTriangle(t *testing.T, rows [][]int64) *Triangle {
	t.Helper()
	tri, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	return tri
}

func TestAppendRow_GrowsShape(t *testing.T) {
	tri := New()
	for i, row := range smallRows() {
		if err := tri.AppendRow(row); err != nil {
			t.Fatalf("AppendRow row %d: %v", i, err)
		}
		if got, want := tri.Height(), i+1; got != want {
			t.Errorf("Height after row %d = %d, want %d", i, got, want)
		}
		if got, want := tri.Width(), i+1; got != want {
			t.Errorf("Width after row %d = %d, want %d", i, got, want)
		}
	}
	if got, want := tri.Cells(), 10; got != want {
		t.Errorf("Cells = %d, want %d", got, want)
	}
}

func TestAppendRow_RejectsWrongLength(t *testing.T) {
	tests := []struct {
		name string
		prep [][]int64
		row  []int64
		want InvalidShapeError
	}{
		{"too short", [][]int64{{1}}, []int64{2}, InvalidShapeError{Got: 1, Want: 2}},
		{"too long", [][]int64{{1}}, []int64{2, 3, 4}, InvalidShapeError{Got: 3, Want: 2}},
		{"empty first row", nil, nil, InvalidShapeError{Got: 0, Want: 1}},
		{"wide first row", nil, []int64{1, 2}, InvalidShapeError{Got: 2, Want: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tri := mustTriangle(t, tc.prep)
			err := tri.AppendRow(tc.row)
			var shapeErr InvalidShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("AppendRow error = %v, want InvalidShapeError", err)
			}
			if shapeErr != tc.want {
				t.Errorf("error = %+v, want %+v", shapeErr, tc.want)
			}
		})
	}
}

func TestAppendRow_AtomicOnFailure(t *testing.T) {
	tri := mustTriangle(t, smallRows())
	before := tri.Rows()

	if err := tri.AppendRow([]int64{1, 2, 3}); err == nil {
		t.Fatal("AppendRow accepted a row of the wrong length")
	}
	if !reflect.DeepEqual(tri.Rows(), before) {
		t.Error("rejected append modified the triangle")
	}

	// A correctly sized row must still be accepted afterwards.
	if err := tri.AppendRow([]int64{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("AppendRow after rejection: %v", err)
	}
	if got, want := tri.Height(), 5; got != want {
		t.Errorf("Height = %d, want %d", got, want)
	}
}

func TestAppendRow_CopiesInput(t *testing.T) {
	row := []int64{42}
	tri := New()
	if err := tri.AppendRow(row); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	row[0] = 7
	if got := tri.At(0, 0); got != 42 {
		t.Errorf("At(0,0) = %d after mutating the caller's slice, want 42", got)
	}
}

func TestFromRows_Invalid(t *testing.T) {
	tri, err := FromRows([][]int64{{1}, {2, 3, 4}})
	if err == nil {
		t.Fatal("FromRows accepted a malformed triangle")
	}
	if tri != nil {
		t.Errorf("FromRows returned %v alongside an error, want nil", tri)
	}
}

func TestEmptyTriangleDimensions(t *testing.T) {
	tri := New()
	if tri.Height() != 0 || tri.Width() != 0 || tri.Cells() != 0 {
		t.Errorf("empty triangle dimensions = %d/%d/%d, want 0/0/0",
			tri.Height(), tri.Width(), tri.Cells())
	}
	if got := tri.Sum(); got != 0 {
		t.Errorf("Sum = %d, want 0", got)
	}
	if got := tri.String(); got != "" {
		t.Errorf("String = %q, want empty", got)
	}
}

func TestAtAndSet(t *testing.T) {
	tri := mustTriangle(t, smallRows())
	if got := tri.At(2, 1); got != 4 {
		t.Errorf("At(2,1) = %d, want 4", got)
	}
	tri.Set(2, 1, 99)
	if got := tri.At(2, 1); got != 99 {
		t.Errorf("At(2,1) after Set = %d, want 99", got)
	}
}

func TestRowAndRows_ReturnCopies(t *testing.T) {
	tri := mustTriangle(t, smallRows())

	row := tri.Row(1)
	row[0] = -1
	if got := tri.At(1, 0); got != 7 {
		t.Errorf("mutating Row copy changed the triangle: At(1,0) = %d", got)
	}

	rows := tri.Rows()
	rows[3][2] = -1
	if got := tri.At(3, 2); got != 9 {
		t.Errorf("mutating Rows copy changed the triangle: At(3,2) = %d", got)
	}
	if !reflect.DeepEqual(tri.Rows(), smallRows()) {
		t.Error("Rows does not match the appended data")
	}
}

func TestSum(t *testing.T) {
	tri := mustTriangle(t, smallRows())
	if got, want := tri.Sum(), int64(51); got != want {
		t.Errorf("Sum = %d, want %d", got, want)
	}
}

func TestString_ParserLayout(t *testing.T) {
	tri := mustTriangle(t, smallRows())
	want := "3\n7 4\n2 4 6\n8 5 9 3"
	if got := tri.String(); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

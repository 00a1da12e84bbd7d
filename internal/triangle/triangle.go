package triangle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyTriangle is returned when a fold is requested on a triangle with
// no rows. An empty triangle is a valid value; only collapsing it is not.
var ErrEmptyTriangle = errors.New("triangle: fold of an empty triangle")

// InvalidShapeError reports an appended row whose length does not continue
// the triangular shape.
type InvalidShapeError struct {
	// Got is the length of the rejected row.
	Got int
	// Want is the length the next row must have.
	Want int
}

// Error returns a formatted message describing the shape violation.
func (e InvalidShapeError) Error() string {
	return fmt.Sprintf("triangle: row has %d values, want %d", e.Got, e.Want)
}

// Triangle is a triangular grid of int64 values: row i holds i+1 values.
// The zero value (and New()) is an empty triangle ready for AppendRow.
type Triangle struct {
	rows [][]int64
}

// New creates an empty triangle.
func New() *Triangle {
	return &Triangle{}
}

// FromRows builds a triangle by appending each row in order. It fails with
// an InvalidShapeError on the first row that breaks the shape, in which case
// the returned triangle is nil.
//
// Parameters:
//   - rows: The rows to append, top to bottom.
//
// Returns:
//   - *Triangle: The built triangle.
//   - error: An InvalidShapeError if any row has the wrong length.
func FromRows(rows [][]int64) (*Triangle, error) {
	t := New()
	for _, row := range rows {
		if err := t.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AppendRow appends the next row. The row must hold exactly Height()+1
// values; otherwise an InvalidShapeError is returned and the triangle is
// left unchanged. The input slice is copied, so the caller keeps ownership.
func (t *Triangle) AppendRow(row []int64) error {
	want := len(t.rows) + 1
	if len(row) != want {
		return InvalidShapeError{Got: len(row), Want: want}
	}
	r := make([]int64, len(row))
	copy(r, row)
	t.rows = append(t.rows, r)
	return nil
}

// Height returns the number of rows.
func (t *Triangle) Height() int {
	return len(t.rows)
}

// Width returns the length of the bottom row, which is 0 for an empty
// triangle and Height() otherwise.
func (t *Triangle) Width() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows[len(t.rows)-1])
}

// Cells returns the total number of values stored.
func (t *Triangle) Cells() int {
	h := len(t.rows)
	return h * (h + 1) / 2
}

// At returns the value at row r, position n. Bounds are the caller's
// responsibility: out-of-range indices panic like any slice access.
func (t *Triangle) At(r, n int) int64 {
	return t.rows[r][n]
}

// Set overwrites the value at row r, position n. Overwriting never changes
// a row's length; bounds are the caller's responsibility.
func (t *Triangle) Set(r, n int, v int64) {
	t.rows[r][n] = v
}

// Row returns a copy of row i. Mutating the returned slice does not affect
// the triangle.
func (t *Triangle) Row(i int) []int64 {
	row := make([]int64, len(t.rows[i]))
	copy(row, t.rows[i])
	return row
}

// Rows returns a deep copy of all rows, top to bottom.
func (t *Triangle) Rows() [][]int64 {
	rows := make([][]int64, len(t.rows))
	for i := range t.rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Sum returns the sum of every value in the triangle.
func (t *Triangle) Sum() int64 {
	var sum int64
	for _, row := range t.rows {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// String renders the triangle one row per line with space-separated values,
// the same layout the parser accepts.
func (t *Triangle) String() string {
	var sb strings.Builder
	for i, row := range t.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for n, v := range row {
			if n > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatInt(v, 10))
		}
	}
	return sb.String()
}

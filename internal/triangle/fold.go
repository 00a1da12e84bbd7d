package triangle

// LeafFunc seeds an accumulator value from a bottom-row cell.
type LeafFunc[T any] func(value int64) T

// CombineFunc merges a cell value with the accumulators of its two children
// (the cells directly below and below-right). It must not mutate the child
// accumulators: the fold may still read them for the neighbouring cell.
type CombineFunc[T any] func(value int64, left, right T) T

// Fold collapses the triangle bottom-up into a single accumulator value.
//
// The bottom row is seeded through leaf, then each row above is merged in
// place: position n combines with accumulators n and n+1 of the row below.
// leaf runs exactly once per bottom-row cell and combine exactly once per
// remaining cell. The triangle itself is never modified.
//
// Parameters:
//   - t: The triangle to fold. A nil or empty triangle yields ErrEmptyTriangle.
//   - leaf: Seeds the accumulator from a bottom-row value.
//   - combine: Merges a value with its children's accumulators.
//
// Returns:
//   - T: The accumulator for the apex cell.
//   - error: ErrEmptyTriangle when there is nothing to fold.
func Fold[T any](t *Triangle, leaf LeafFunc[T], combine CombineFunc[T]) (T, error) {
	return fold(t, leaf, combine, nil)
}

// fold is the engine behind Fold with an optional per-row observation hook.
// The hook runs after each row is merged (the seeded bottom row counts as
// the first); returning a non-nil error aborts the fold with that error.
// Accumulator entries beyond the active row's width go stale and are never
// read again, so they are deliberately not cleared.
func fold[T any](t *Triangle, leaf LeafFunc[T], combine CombineFunc[T], onRow func(rowsDone, totalRows int) error) (T, error) {
	var zero T
	if t == nil || len(t.rows) == 0 {
		return zero, ErrEmptyTriangle
	}

	total := len(t.rows)
	bottom := t.rows[total-1]
	acc := make([]T, len(bottom))
	for n, v := range bottom {
		acc[n] = leaf(v)
	}
	if err := notifyRow(onRow, 1, total); err != nil {
		return zero, err
	}

	for r := total - 2; r >= 0; r-- {
		row := t.rows[r]
		for n, v := range row {
			acc[n] = combine(v, acc[n], acc[n+1])
		}
		if err := notifyRow(onRow, total-r, total); err != nil {
			return zero, err
		}
	}
	return acc[0], nil
}

func notifyRow(onRow func(rowsDone, totalRows int) error, done, total int) error {
	if onRow == nil {
		return nil
	}
	return onRow(done, total)
}

package triangle

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/mbenard/tricalc/internal/progress"
)

// PathRule describes one path-selection rule as fold parameters. Rules carry
// no state; they exist so evaluators, the CLI registry, and the tests all
// share a single definition of each rule's semantics.
type PathRule interface {
	// Key is the short registry identifier used on the command line.
	Key() string
	// Name is the human-readable rule description.
	Name() string
	// Leaf seeds the path accumulator from a bottom-row value.
	Leaf(v int64) int64
	// Combine merges a cell value with its children's path accumulators.
	Combine(v, left, right int64) int64
}

// MaxRule selects the unconstrained maximum path sum.
type MaxRule struct{}

// Key implements PathRule.
func (MaxRule) Key() string { return "max" }

// Name implements PathRule.
func (MaxRule) Name() string { return "Maximum path" }

// Leaf implements PathRule.
func (MaxRule) Leaf(v int64) int64 { return v }

// Combine implements PathRule.
func (MaxRule) Combine(v, left, right int64) int64 {
	return v + max(left, right)
}

// OddEvenRule selects the maximum path sum under the parity constraint:
// a step down-left is allowed only onto an odd accumulated value and a step
// down-right only onto an even accumulated value. The parity test applies to
// the child's ACCUMULATED path value, not its raw cell value; a blocked
// child contributes zero.
type OddEvenRule struct{}

// Key implements PathRule.
func (OddEvenRule) Key() string { return "oddeven" }

// Name implements PathRule.
func (OddEvenRule) Name() string { return "Odd-even constrained path" }

// Leaf implements PathRule.
func (OddEvenRule) Leaf(v int64) int64 { return v }

// Combine implements PathRule.
func (OddEvenRule) Combine(v, left, right int64) int64 {
	l := left
	if isEven(l) {
		l = 0
	}
	r := int64(0)
	if isEven(right) {
		r = right
	}
	return v + max(l, r)
}

func isEven(v int64) bool { return v%2 == 0 }

// ─────────────────────────────────────────────────────────────────────────────
// Evaluators
// ─────────────────────────────────────────────────────────────────────────────

// Evaluator runs one path rule over a triangle, reporting fractional
// progress and honoring context cancellation between rows.
type Evaluator interface {
	// Key returns the rule's registry identifier.
	Key() string
	// Name returns the rule's human-readable name.
	Name() string
	// Evaluate folds the triangle under the rule. Progress updates are sent
	// to progressChan (which may be nil) tagged with the evaluator index;
	// sends never block. The triangle is only read, so one triangle may be
	// evaluated concurrently by several evaluators.
	Evaluate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, t *Triangle) (int64, error)
}

// ruleEvaluator implements Evaluator purely via the fold engine.
type ruleEvaluator struct {
	rule PathRule
}

// NewEvaluator wraps a PathRule into an Evaluator.
func NewEvaluator(rule PathRule) Evaluator {
	return &ruleEvaluator{rule: rule}
}

// Compile-time interface compliance check.
var _ Evaluator = (*ruleEvaluator)(nil)

// Key implements Evaluator.
func (e *ruleEvaluator) Key() string { return e.rule.Key() }

// Name implements Evaluator.
func (e *ruleEvaluator) Name() string { return e.rule.Name() }

// Evaluate implements Evaluator.
func (e *ruleEvaluator) Evaluate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, t *Triangle) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	onRow := func(rowsDone, totalRows int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if progressChan != nil {
			select {
			case progressChan <- progress.ProgressUpdate{EvaluatorIndex: index, Value: float64(rowsDone) / float64(totalRows)}:
			default: // progress is advisory, never block the fold
			}
		}
		return nil
	}

	return fold(t, e.rule.Leaf, e.rule.Combine, onRow)
}

// ─────────────────────────────────────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────────────────────────────────────

// EvaluatorFactory resolves rule keys to evaluator instances.
type EvaluatorFactory interface {
	// List returns the registered keys in sorted order.
	List() []string
	// Get returns the evaluator for a key, or an error naming the
	// available keys.
	Get(key string) (Evaluator, error)
	// GetAll returns the full registry keyed by rule key.
	GetAll() map[string]Evaluator
}

// DefaultFactory is the standard registry holding the two program rules.
type DefaultFactory struct {
	evaluators map[string]Evaluator
}

// Compile-time interface compliance check.
var _ EvaluatorFactory = (*DefaultFactory)(nil)

// NewDefaultFactory creates a factory with the max and oddeven rules
// registered.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{evaluators: make(map[string]Evaluator)}
	for _, rule := range []PathRule{MaxRule{}, OddEvenRule{}} {
		f.evaluators[rule.Key()] = NewEvaluator(rule)
	}
	return f
}

// List implements EvaluatorFactory.
func (f *DefaultFactory) List() []string {
	keys := make([]string, 0, len(f.evaluators))
	for k := range f.evaluators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get implements EvaluatorFactory.
func (f *DefaultFactory) Get(key string) (Evaluator, error) {
	e, ok := f.evaluators[key]
	if !ok {
		return nil, fmt.Errorf("unknown rule %q (available: %s)", key, strings.Join(f.List(), ", "))
	}
	return e, nil
}

// GetAll implements EvaluatorFactory.
func (f *DefaultFactory) GetAll() map[string]Evaluator {
	all := make(map[string]Evaluator, len(f.evaluators))
	for k, e := range f.evaluators {
		all[k] = e
	}
	return all
}

// ─────────────────────────────────────────────────────────────────────────────
// Convenience evaluations and auxiliary folds
// ─────────────────────────────────────────────────────────────────────────────

// MaxPath returns the unconstrained maximum top-to-bottom path sum.
func MaxPath(t *Triangle) (int64, error) {
	r := MaxRule{}
	return Fold(t, r.Leaf, r.Combine)
}

// MaxOddEvenPath returns the maximum path sum under the odd-even rule.
func MaxOddEvenPath(t *Triangle) (int64, error) {
	r := OddEvenRule{}
	return Fold(t, r.Leaf, r.Combine)
}

// MinPath returns the minimum top-to-bottom path sum.
func MinPath(t *Triangle) (int64, error) {
	return Fold(t,
		func(v int64) int64 { return v },
		func(v, left, right int64) int64 { return v + min(left, right) },
	)
}

// PathCount returns the number of distinct top-to-bottom paths, which is
// 2^(height-1). The count is a big.Int since it outgrows int64 beyond 64
// rows.
func PathCount(t *Triangle) (*big.Int, error) {
	return Fold(t,
		func(int64) *big.Int { return big.NewInt(1) },
		func(_ int64, left, right *big.Int) *big.Int {
			return new(big.Int).Add(left, right)
		},
	)
}

// Trace describes one concrete top-to-bottom path.
type Trace struct {
	// Sum is the path's value sum.
	Sum int64
	// Positions holds the position within each row, top to bottom; entry i
	// is in [0, i] and consecutive entries differ by 0 or 1.
	Positions []int
	// Values holds the cell values along the path, top to bottom.
	Values []int64
}

// traceAcc carries a path sum plus the downward steps that achieve it.
// Step slices are never mutated after creation, so children may be shared.
type traceAcc struct {
	sum   int64
	steps []int8 // 0 = down-left, 1 = down-right
}

// MaxPathTrace returns a path achieving MaxPath. When both children tie,
// the left child is chosen, which pins the result for tests and displays.
func MaxPathTrace(t *Triangle) (Trace, error) {
	acc, err := Fold(t,
		func(v int64) traceAcc { return traceAcc{sum: v} },
		func(v int64, left, right traceAcc) traceAcc {
			best, dir := left, int8(0)
			if right.sum > left.sum {
				best, dir = right, 1
			}
			steps := make([]int8, 0, len(best.steps)+1)
			steps = append(steps, dir)
			steps = append(steps, best.steps...)
			return traceAcc{sum: v + best.sum, steps: steps}
		},
	)
	if err != nil {
		return Trace{}, err
	}

	positions := make([]int, t.Height())
	values := make([]int64, t.Height())
	pos := 0
	positions[0] = 0
	values[0] = t.At(0, 0)
	for i, step := range acc.steps {
		pos += int(step)
		positions[i+1] = pos
		values[i+1] = t.At(i+1, pos)
	}
	return Trace{Sum: acc.sum, Positions: positions, Values: values}, nil
}

// Stats summarizes a triangle for display.
type Stats struct {
	Height int
	Width  int
	Cells  int
	Sum    int64
	MinVal int64
	MaxVal int64
}

// ComputeStats gathers display statistics. All fields are zero for an empty
// triangle.
func ComputeStats(t *Triangle) Stats {
	s := Stats{Height: t.Height(), Width: t.Width(), Cells: t.Cells()}
	if s.Height == 0 {
		return s
	}
	s.MinVal = t.rows[0][0]
	s.MaxVal = t.rows[0][0]
	for _, row := range t.rows {
		for _, v := range row {
			s.Sum += v
			if v < s.MinVal {
				s.MinVal = v
			}
			if v > s.MaxVal {
				s.MaxVal = v
			}
		}
	}
	return s
}

package orchestration

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	apperrors "github.com/mbenard/tricalc/internal/errors"
	"github.com/mbenard/tricalc/internal/progress"
	"github.com/mbenard/tricalc/internal/triangle"
)

// MockResultPresenter records presenter calls so tests can assert how the
// analysis drives presentation.
type MockResultPresenter struct {
	TableCalls   int
	ResultsCalls int
}

func (m *MockResultPresenter) PresentSummaryTable(results []EvaluationResult, out io.Writer) {
	m.TableCalls++
}

func (m *MockResultPresenter) PresentResults(results []EvaluationResult, opts PresentationOptions, out io.Writer) {
	m.ResultsCalls++
}

// MockErrorHandler always maps errors to the generic exit code.
type MockErrorHandler struct{}

func (MockErrorHandler) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.ExitErrorGeneric
}

// MockEvaluator is a func-field implementation of triangle.Evaluator used
// to exercise the orchestration logic without real folds.
type MockEvaluator struct {
	KeyFunc      func() string
	NameFunc     func() string
	EvaluateFunc func(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, t *triangle.Triangle) (int64, error)
}

func (m *MockEvaluator) Key() string {
	if m.KeyFunc != nil {
		return m.KeyFunc()
	}
	return "mock"
}

func (m *MockEvaluator) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "Mock"
}

func (m *MockEvaluator) Evaluate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, t *triangle.Triangle) (int64, error) {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, progressChan, index, t)
	}
	return 0, nil
}

// testTriangle builds a small triangle for orchestration tests.
func testTriangle(t *testing.T) *triangle.Triangle {
	t.Helper()
	tri, err := triangle.FromRows([][]int64{{3}, {7, 4}, {2, 4, 6}, {8, 5, 9, 3}})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return tri
}

// TestExecuteEvaluations verifies that the orchestrator correctly runs
// evaluators and aggregates their results.
func TestExecuteEvaluations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		evaluators  []triangle.Evaluator
		expectedLen int
		expectError bool
	}{
		{
			name: "Single success",
			evaluators: []triangle.Evaluator{
				&MockEvaluator{
					EvaluateFunc: func(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, tri *triangle.Triangle) (int64, error) {
						return 23, nil
					},
				},
			},
			expectedLen: 1,
			expectError: false,
		},
		{
			name: "Single failure",
			evaluators: []triangle.Evaluator{
				&MockEvaluator{
					EvaluateFunc: func(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, tri *triangle.Triangle) (int64, error) {
						return 0, errors.New("mock error")
					},
				},
			},
			expectedLen: 1,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			results := ExecuteEvaluations(context.Background(), tt.evaluators, testTriangle(t), NullProgressReporter{}, io.Discard)
			if len(results) != tt.expectedLen {
				t.Errorf("expected %d results, got %d", tt.expectedLen, len(results))
			}
			if tt.expectError {
				if results[0].Err == nil {
					t.Errorf("expected error, got nil")
				}
			} else {
				if results[0].Err != nil {
					t.Errorf("unexpected error: %v", results[0].Err)
				}
				if results[0].Value != 23 {
					t.Errorf("expected value 23, got %d", results[0].Value)
				}
			}
		})
	}
}

// TestExecuteEvaluations_PreservesInputOrder verifies that result slots
// follow evaluator order even when completion order differs.
func TestExecuteEvaluations_PreservesInputOrder(t *testing.T) {
	t.Parallel()
	evaluators := []triangle.Evaluator{
		&MockEvaluator{
			KeyFunc: func() string { return "slow" },
			EvaluateFunc: func(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, tri *triangle.Triangle) (int64, error) {
				time.Sleep(20 * time.Millisecond)
				return 1, nil
			},
		},
		&MockEvaluator{
			KeyFunc: func() string { return "fast" },
			EvaluateFunc: func(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, tri *triangle.Triangle) (int64, error) {
				return 2, nil
			},
		},
	}

	results := ExecuteEvaluations(context.Background(), evaluators, testTriangle(t), NullProgressReporter{}, io.Discard)
	if results[0].Key != "slow" || results[1].Key != "fast" {
		t.Errorf("results out of input order: %q, %q", results[0].Key, results[1].Key)
	}
	if results[0].Value != 1 || results[1].Value != 2 {
		t.Errorf("values = %d, %d, want 1, 2", results[0].Value, results[1].Value)
	}
}

// TestAnalyzeResults verifies exit code derivation. Every requested rule
// must succeed; a single failed rule fails the whole run.
func TestAnalyzeResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		results        []EvaluationResult
		expectedStatus int
	}{
		{
			name: "All success",
			results: []EvaluationResult{
				{Key: "max", Name: "A", Value: 23, Duration: time.Millisecond},
				{Key: "oddeven", Name: "B", Value: 10, Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "All failure",
			results: []EvaluationResult{
				{Key: "max", Name: "A", Duration: time.Millisecond, Err: errors.New("fail")},
				{Key: "oddeven", Name: "B", Duration: time.Millisecond, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
		},
		{
			name: "Mixed success/failure",
			results: []EvaluationResult{
				{Key: "max", Name: "A", Value: 23, Duration: time.Millisecond},
				{Key: "oddeven", Name: "B", Duration: time.Millisecond, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status := AnalyzeResults(tt.results, PresentationOptions{}, &MockResultPresenter{}, MockErrorHandler{}, io.Discard)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
		})
	}
}

// TestAnalyzeResults_PresentationFlow verifies which presenter methods run
// for each outcome.
func TestAnalyzeResults_PresentationFlow(t *testing.T) {
	t.Parallel()

	t.Run("table only in verbose mode", func(t *testing.T) {
		results := []EvaluationResult{{Key: "max", Value: 23}}

		quiet := &MockResultPresenter{}
		AnalyzeResults(results, PresentationOptions{}, quiet, MockErrorHandler{}, io.Discard)
		if quiet.TableCalls != 0 {
			t.Errorf("table presented %d times without verbose, want 0", quiet.TableCalls)
		}

		verbose := &MockResultPresenter{}
		AnalyzeResults(results, PresentationOptions{Verbose: true}, verbose, MockErrorHandler{}, io.Discard)
		if verbose.TableCalls != 1 {
			t.Errorf("table presented %d times with verbose, want 1", verbose.TableCalls)
		}
	})

	t.Run("partial success still presents results", func(t *testing.T) {
		results := []EvaluationResult{
			{Key: "max", Value: 23},
			{Key: "oddeven", Err: errors.New("fail")},
		}
		presenter := &MockResultPresenter{}
		AnalyzeResults(results, PresentationOptions{}, presenter, MockErrorHandler{}, io.Discard)
		if presenter.ResultsCalls != 1 {
			t.Errorf("results presented %d times, want 1", presenter.ResultsCalls)
		}
	})

	t.Run("total failure skips results", func(t *testing.T) {
		results := []EvaluationResult{{Key: "max", Err: errors.New("fail")}}
		presenter := &MockResultPresenter{}
		AnalyzeResults(results, PresentationOptions{}, presenter, MockErrorHandler{}, io.Discard)
		if presenter.ResultsCalls != 0 {
			t.Errorf("results presented %d times after total failure, want 0", presenter.ResultsCalls)
		}
	})
}

// TestGetEvaluatorsToRun verifies rule selection against the default
// factory.
func TestGetEvaluatorsToRun(t *testing.T) {
	t.Parallel()
	factory := triangle.NewDefaultFactory()

	t.Run("all expands to every rule in key order", func(t *testing.T) {
		evaluators := GetEvaluatorsToRun("all", factory)
		if len(evaluators) != 2 {
			t.Fatalf("got %d evaluators, want 2", len(evaluators))
		}
		if evaluators[0].Key() != "max" || evaluators[1].Key() != "oddeven" {
			t.Errorf("order = %q, %q, want max, oddeven", evaluators[0].Key(), evaluators[1].Key())
		}
	})

	t.Run("single rule", func(t *testing.T) {
		evaluators := GetEvaluatorsToRun("oddeven", factory)
		if len(evaluators) != 1 || evaluators[0].Key() != "oddeven" {
			t.Fatalf("got %v, want the oddeven evaluator", evaluators)
		}
	})

	t.Run("unknown rule", func(t *testing.T) {
		if evaluators := GetEvaluatorsToRun("nope", factory); evaluators != nil {
			t.Errorf("got %v for an unknown rule, want nil", evaluators)
		}
	})
}

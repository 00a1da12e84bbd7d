// Package orchestration coordinates concurrent execution of triangle
// evaluations and turns their results into an exit code. It decouples the
// evaluation logic from presentation via the ProgressReporter,
// ResultPresenter and ErrorHandler interfaces.
package orchestration

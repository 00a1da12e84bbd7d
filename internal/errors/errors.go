package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mbenard/tricalc/internal/triangle"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorInput    = 3   // Indicates bad input data (file, parse, or shape errors).
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EvaluationError encapsulates a path evaluation error while preserving the
// original cause. This allows for structured error handling and inspection
// of what went wrong while folding the triangle.
type EvaluationError struct {
	// Cause is the underlying error that triggered this evaluation error.
	Cause error
}

// Error returns the error message from the underlying cause.
//
// Returns:
//   - string: The error message string from the wrapped error.
func (e EvaluationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the EvaluationError.
func (e EvaluationError) Unwrap() error { return e.Cause }

// TimeoutError represents an evaluation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
//
// Returns:
//   - string: The error message string.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
//
// Returns:
//   - string: The error message string.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// FileError represents a failure to open or read an input file. It keeps the
// offending path so callers can produce a diagnostic naming the file.
type FileError struct {
	// Path is the file that could not be used.
	Path string
	// Err is the underlying I/O error.
	Err error
}

// Error returns a formatted message naming the file and the cause.
//
// Returns:
//   - string: The error message string.
func (e FileError) Error() string {
	return fmt.Sprintf("cannot open %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error for errors.Is/errors.As inspection.
//
// Returns:
//   - error: The wrapped I/O error.
func (e FileError) Unwrap() error { return e.Err }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the application exit code it should produce.
// Cancellation maps to ExitErrorCanceled, timeouts to ExitErrorTimeout,
// file and triangle data problems to ExitErrorInput, configuration problems
// to ExitErrorConfig, and anything else to ExitErrorGeneric. Both the CLI
// presenter and the TUI bridge derive their exit codes here so the two
// surfaces never disagree.
//
// Parameters:
//   - err: The error to classify. A nil error yields ExitSuccess.
//
// Returns:
//   - int: The exit code for the error.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		timeoutErr TimeoutError
		configErr  ConfigError
		fileErr    FileError
		parseErr   *triangle.ParseError
		shapeErr   triangle.InvalidShapeError
	)

	switch {
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.As(err, &fileErr),
		errors.As(err, &parseErr),
		errors.As(err, &shapeErr),
		errors.Is(err, triangle.ErrEmptyTriangle),
		errors.Is(err, triangle.ErrRowLimit):
		return ExitErrorInput
	case errors.As(err, &configErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

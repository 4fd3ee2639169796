// Package apperrors defines the structured error taxonomy shared by the
// matrix engine and its callers, allowing for a clear distinction between
// error classes (dimension mismatches, bounds violations, misuse of the
// metrics collector, configuration problems) and for carrying the
// underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// The sentinel errors below are meant to be matched with errors.Is even when
// wrapped with additional context.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between algorithms.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Sentinel errors for the matrix multiplication core. Every validation
// failure detected by the core maps to exactly one of these; callers match
// them with errors.Is regardless of wrapping.
var (
	// ErrDimensionMismatch signals that two operand matrices disagree in size.
	ErrDimensionMismatch = errors.New("matrix dimensions disagree")

	// ErrInvalidSize signals a size that is not a power of two where one is
	// required, or a non-positive size anywhere.
	ErrInvalidSize = errors.New("invalid matrix size")

	// ErrOutOfBounds signals that a submatrix split or merge exceeds the
	// bounds of the parent matrix.
	ErrOutOfBounds = errors.New("submatrix exceeds parent bounds")

	// ErrNilOperand signals that a required matrix argument is absent.
	ErrNilOperand = errors.New("matrix operand is nil")

	// ErrInvalidState signals misuse of the metrics collector, such as
	// stopping a timer that was never started.
	ErrInvalidState = errors.New("invalid collector state")

	// ErrInvalidArgument signals a semantically invalid argument, such as a
	// negative multiplication count increment.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResultMismatch signals that two algorithms produced different
	// products for the same operands.
	ErrResultMismatch = errors.New("algorithm results disagree")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
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

// ServerError represents errors that occur in the HTTP server component.
// It wraps an underlying error with additional context specific to the
// server operation.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the error message for a ServerError.
// It combines the descriptive message and the underlying cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
//
// Parameters:
//   - message: A description of the error context.
//   - cause: The underlying error that occurred (can be nil).
//
// Returns:
//   - error: A new ServerError instance.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

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

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

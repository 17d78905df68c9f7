package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/quadbench/internal/quadrature"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error, including worker failures.
	ExitErrorMismatch = 3   // Indicates that reducers disagreed beyond tolerance.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the sweep was interrupted (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values.
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

// ReductionError records which reduction of a sweep failed while preserving
// the original cause.
type ReductionError struct {
	// Strategy is the name of the reducer.
	Strategy string
	// N is the subdivision count of the failed run.
	N int
	// Cause is the underlying error.
	Cause error
}

// Error returns a message naming the run and its cause.
func (e ReductionError) Error() string {
	return fmt.Sprintf("%s reduction (n=%d) failed: %v", e.Strategy, e.N, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e ReductionError) Unwrap() error { return e.Cause }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ColorProvider supplies the escape sequences used to colour error output.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleReductionError prints a failure report for err and returns the exit
// code matching its class.
//
// Parameters:
//   - err: The error returned by the run.
//   - duration: How long the run took before failing; zero hides it.
//   - out: The writer for the report.
//   - colors: The colour scheme.
//
// Returns:
//   - int: The exit code.
func HandleReductionError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration)
	}

	var cfgErr ConfigError
	switch {
	case IsContextError(err):
		fmt.Fprintf(out, "%sSweep interrupted%s: %v%s\n", colors.Yellow(), suffix, err, colors.Reset())
		return ExitErrorCanceled
	case errors.As(err, &cfgErr),
		errors.Is(err, quadrature.ErrInvalidInterval),
		errors.Is(err, quadrature.ErrInvalidThreadCount):
		fmt.Fprintf(out, "%sInvalid parameters%s: %v%s\n", colors.Red(), suffix, err, colors.Reset())
		return ExitErrorConfig
	case errors.Is(err, quadrature.ErrWorkerFailure):
		fmt.Fprintf(out, "%sWorker failure%s: %v%s\n", colors.Red(), suffix, err, colors.Reset())
		return ExitErrorGeneric
	default:
		fmt.Fprintf(out, "%sError%s: %v%s\n", colors.Red(), suffix, err, colors.Reset())
		return ExitErrorGeneric
	}
}

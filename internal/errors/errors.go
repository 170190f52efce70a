// Package apperrors defines the structured error types of fibbench and the
// exit codes the process reports, so that expected failures (a configuration
// mistake, an interrupted sweep) can be told apart from unexpected ones.
//
// All wrapping types implement Unwrap and work with errors.Is / errors.As.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Sweep completed.
	ExitErrorGeneric  = 1   // Unexpected failure during the sweep or rendering.
	ExitErrorTimeout  = 2   // The -timeout limit was reached.
	ExitErrorConfig   = 4   // Invalid flags or environment values.
	ExitErrorCanceled = 130 // Interrupted by SIGINT/SIGTERM.
)

// ConfigError represents an invalid user configuration.
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

// ValidationError reports a single field that failed validation, such as an
// unparsable entry in the list of input sizes.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// ProbeError records which measurement failed. The underlying cause stays
// reachable through errors.Is, so a recursion-depth failure is still
// recognisable after wrapping.
type ProbeError struct {
	// Label is the display label of the probed variant.
	Label string
	// N is the Fibonacci index being computed.
	N uint64
	// Cause is the error returned by the calculator.
	Cause error
}

// Error returns a message naming the variant and the input size.
func (e *ProbeError) Error() string {
	return fmt.Sprintf("%s failed for n=%d: %v", e.Label, e.N, e.Cause)
}

// Unwrap returns the calculator error.
func (e *ProbeError) Unwrap() error { return e.Cause }

// NewProbeError wraps cause with the label and input size of the failed
// measurement. It returns nil when cause is nil.
func NewProbeError(label string, n uint64, cause error) error {
	if cause == nil {
		return nil
	}
	return &ProbeError{Label: label, N: n, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

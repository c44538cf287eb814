package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes.
const (
	ExitSuccess        = 0   // Successful execution.
	ExitErrorGeneric   = 1   // Generic error.
	ExitErrorTimeout   = 2   // The operation timed out.
	ExitErrorMismatch  = 3   // Computed digits disagree with another algorithm or the reference.
	ExitErrorConfig    = 4   // Invalid configuration or arguments.
	ExitErrorReference = 5   // The reference data could not be used.
	ExitErrorCanceled  = 130 // Canceled (e.g. SIGINT).
)

var (
	// ErrInvalidArgument reports a requested precision that cannot be served.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrReferenceUnavailable reports reference data that cannot be read:
	// missing, unreadable or malformed.
	ErrReferenceUnavailable = errors.New("reference unavailable")
	// ErrOutOfRange reports a request for more reference characters than the
	// reference holds, or for a non-positive number of them.
	ErrOutOfRange = errors.New("out of range")
)

// ConfigError is a user configuration error such as an invalid flag value.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised by a calculator.
type CalculationError struct {
	// Algorithm is the display name of the failing calculator, if known.
	Algorithm string
	// Cause is the underlying error.
	Cause error
}

// Error returns the cause message, prefixed by the algorithm when set.
func (e CalculationError) Error() string {
	if e.Algorithm == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Algorithm, e.Cause)
}

// Unwrap returns the cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports an operation that exceeded its time limit.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration that was exceeded.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Is makes a TimeoutError match context.DeadlineExceeded.
func (e TimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
}

// ValidationError reports an input validation failure. It matches
// ErrInvalidArgument.
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

// Is makes a ValidationError match ErrInvalidArgument.
func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ReferenceError reports a failed access to the reference expansion. Kind is
// ErrReferenceUnavailable or ErrOutOfRange; Err, when set, is the underlying
// cause (typically an I/O error). Both are reachable through errors.Is.
type ReferenceError struct {
	// Op is the oracle operation, e.g. "fetch".
	Op string
	// Source names the reference data source.
	Source string
	// Kind is the error category sentinel.
	Kind error
	// Err is the underlying cause, possibly nil.
	Err error
}

// Error returns a message naming the operation, source and cause.
func (e *ReferenceError) Error() string {
	msg := fmt.Sprintf("reference %s %s: %v", e.Op, e.Source, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the category and the cause.
func (e *ReferenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// WrapError wraps err with a formatted context message. It returns nil when
// err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

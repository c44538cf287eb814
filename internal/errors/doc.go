// Package apperrors defines the application's error types and exit codes.
//
// Domain failures are identified by three sentinels: ErrInvalidArgument (a
// non-positive or out-of-bounds precision), ErrReferenceUnavailable (the
// reference data cannot be read) and ErrOutOfRange (more reference digits
// requested than exist). Structured types wrap them so that callers can use
// errors.Is for the category and errors.As for the details.
package apperrors

// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("invalid value %d for flag %s", -3, "--digits")
	if got, want := err.Error(), "invalid value -3 for flag --digits"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	var configErr ConfigError
	if !errors.As(err, &configErr) {
		t.Error("expected error to be ConfigError type")
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         CalculationError
		expectedMsg string
		checkIs     error
	}{
		{
			name:        "Error returns cause message",
			err:         CalculationError{Cause: errors.New("division by zero")},
			expectedMsg: "division by zero",
		},
		{
			name:        "Algorithm prefixes message",
			err:         CalculationError{Algorithm: "series", Cause: errors.New("short result")},
			expectedMsg: "series: short result",
		},
		{
			name:        "errors.Is works with wrapped error",
			err:         CalculationError{Cause: context.Canceled},
			expectedMsg: "context canceled",
			checkIs:     context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, tt.err.Error())
			}
			if tt.checkIs != nil && !errors.Is(tt.err, tt.checkIs) {
				t.Errorf("expected errors.Is(%v) to be true", tt.checkIs)
			}
			if !errors.Is(tt.err.Unwrap(), tt.err.Cause) {
				t.Error("Unwrap should return the cause")
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "decimalPlaces", Message: "must be positive, got 0"}
	if got, want := err.Error(), `validation error for "decimalPlaces": must be positive, got 0`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("ValidationError should match ErrInvalidArgument")
	}
	if errors.Is(err, ErrOutOfRange) {
		t.Error("ValidationError should not match ErrOutOfRange")
	}
	wrapped := WrapError(err, "computing e")
	if !errors.Is(wrapped, ErrInvalidArgument) {
		t.Error("wrapped ValidationError should still match ErrInvalidArgument")
	}
}

func TestReferenceError(t *testing.T) {
	t.Parallel()

	t.Run("Kind only", func(t *testing.T) {
		t.Parallel()
		err := &ReferenceError{Op: "fetch", Source: "embedded", Kind: ErrOutOfRange}
		if got, want := err.Error(), "reference fetch embedded: out of range"; got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
		if !errors.Is(err, ErrOutOfRange) {
			t.Error("expected errors.Is(ErrOutOfRange)")
		}
		if errors.Is(err, ErrReferenceUnavailable) {
			t.Error("did not expect errors.Is(ErrReferenceUnavailable)")
		}
	})

	t.Run("Kind and cause", func(t *testing.T) {
		t.Parallel()
		err := &ReferenceError{Op: "fetch", Source: "/tmp/e.txt", Kind: ErrReferenceUnavailable, Err: fs.ErrNotExist}
		if !errors.Is(err, ErrReferenceUnavailable) {
			t.Error("expected errors.Is(ErrReferenceUnavailable)")
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Error("expected errors.Is(fs.ErrNotExist)")
		}
		var refErr *ReferenceError
		if !errors.As(WrapError(err, "verify"), &refErr) || refErr.Op != "fetch" {
			t.Error("expected errors.As to find the ReferenceError")
		}
	})
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "compute", Limit: 5 * time.Second}
	if got, want := err.Error(), `operation "compute" timed out after 5s`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("TimeoutError should match context.DeadlineExceeded")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
	base := errors.New("boom")
	wrapped := WrapError(base, "step %d", 2)
	if wrapped.Error() != "step 2: boom" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{WrapError(context.Canceled, "x"), true},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

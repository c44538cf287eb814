package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies terminal colour codes without importing the ui
// package.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider provides no colour codes.
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleCalculationError writes a status line describing err to out and
// returns the matching exit code. A nil colors uses DefaultColorProvider.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
		return ExitErrorCanceled
	case errors.Is(err, ErrInvalidArgument):
		fmt.Fprintf(out, "Status: Failure (Invalid argument). %v\n", err)
		return ExitErrorConfig
	case errors.Is(err, ErrReferenceUnavailable), errors.Is(err, ErrOutOfRange):
		fmt.Fprintf(out, "Status: Failure (Reference). %v\n", err)
		return ExitErrorReference
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}

package euler

import (
	"context"
	"fmt"

	apperrors "github.com/agbru/eulercalc/internal/errors"
)

// Number holds the decimal expansion of e to a requested number of decimal
// places, computed by summing the series e = 2 + 1/2! + 1/3! + ... with exact
// fixed-point decimal arithmetic.
//
// Two digit buffers of identical, fixed capacity are used: the accumulator
// (the running sum, i.e. the fractional part of e) and the current term 1/n!.
// Both are allocated once and never resized. A Number is not safe for
// concurrent use while Round is being called.
type Number struct {
	decimalPlaces int
	guardDigits   int

	// integer is the integer part of the value. It is 2 unless a rounding
	// carry has left the fractional digits.
	integer     uint8
	accumulator digits
	term        digits

	// firstNonZero marks the first position of term that may be non-zero;
	// every earlier position is known to be zero. It never decreases.
	firstNonZero int
	// lastDivisor is the n of the last term 1/n! added to the accumulator.
	lastDivisor int
}

// New computes e to decimalPlaces decimal places. It fails with an error
// matching apperrors.ErrInvalidArgument when decimalPlaces is not positive.
//
// The returned value is truncated: call Round before String to obtain the
// correctly rounded expansion.
func New(decimalPlaces int) (*Number, error) {
	return Compute(context.Background(), decimalPlaces, Options{}, nil)
}

// Compute is New with cooperative cancellation and progress reporting. The
// context is checked every CancellationCheckInterval iterations; when it is
// done the partial state is discarded and ctx.Err() is returned. A nil
// reporter disables progress reporting.
//
// Options.ExtraGuardDigits increases the working precision beyond
// GuardDigits(decimalPlaces). Options.Round is applied before returning.
func Compute(ctx context.Context, decimalPlaces int, opts Options, reporter ProgressReporter) (*Number, error) {
	if decimalPlaces <= 0 {
		return nil, apperrors.ValidationError{
			Field:   "decimalPlaces",
			Message: fmt.Sprintf("must be positive, got %d", decimalPlaces),
		}
	}
	if opts.ExtraGuardDigits < 0 {
		return nil, apperrors.ValidationError{
			Field:   "extraGuardDigits",
			Message: fmt.Sprintf("cannot be negative, got %d", opts.ExtraGuardDigits),
		}
	}
	if reporter == nil {
		reporter = func(float64) {}
	}

	guard := GuardDigits(decimalPlaces) + opts.ExtraGuardDigits
	x := &Number{
		decimalPlaces: decimalPlaces,
		guardDigits:   guard,
		integer:       2,
		accumulator:   newDigits(decimalPlaces + guard),
		term:          newDigits(decimalPlaces + guard),
	}
	if err := x.sum(ctx, reporter); err != nil {
		return nil, err
	}
	if opts.Round {
		x.Round()
	}
	return x, nil
}

// sum runs the series to convergence: the loop ends once the term has
// underflowed to zero at the working precision.
func (x *Number) sum(ctx context.Context, reporter ProgressReporter) error {
	// 1/0! + 1/1! is the integer part; the series proper starts at 1/2!.
	x.accumulator[0] = 5
	x.term[0] = 5
	x.firstNonZero = 0
	n := 2

	width := float64(len(x.term))
	var lastReported float64
	for !x.term.isZeroFrom(x.firstNonZero) {
		n++
		x.firstNonZero = x.term.divideBy(n, x.firstNonZero)
		x.integer += x.accumulator.addFrom(x.term, x.firstNonZero)

		if n%CancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if p := float64(x.firstNonZero) / width; p-lastReported >= ProgressReportThreshold {
				reporter(p)
				lastReported = p
			}
		}
	}
	x.lastDivisor = n
	return nil
}

// Round rounds the expansion half-up to the requested number of decimal
// places and clears the guard digits. A carry out of the first fractional
// digit increments the integer part. Calling Round more than once has no
// further effect.
func (x *Number) Round() {
	if x.accumulator[x.decimalPlaces] >= base10/2 {
		x.integer += x.accumulator.incrementAt(x.decimalPlaces - 1)
	}
	clear(x.accumulator[x.decimalPlaces:])
}

// String renders the value as the integer part, a decimal point and exactly
// DecimalPlaces digits. Guard digits are never rendered.
func (x *Number) String() string {
	b := make([]byte, 0, x.decimalPlaces+2)
	b = append(b, '0'+x.integer, '.')
	for _, d := range x.accumulator[:x.decimalPlaces] {
		b = append(b, '0'+d)
	}
	return string(b)
}

// DecimalPlaces returns the requested precision.
func (x *Number) DecimalPlaces() int { return x.decimalPlaces }

// GuardDigits returns the number of extra digits carried during summation.
func (x *Number) GuardDigits() int { return x.guardDigits }

// Terms returns the number of series terms 1/n! (n >= 2) that were added
// before the term underflowed, including the final all-zero one.
func (x *Number) Terms() int { return x.lastDivisor - 1 }

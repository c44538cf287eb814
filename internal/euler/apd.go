package euler

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v2"
)

// DecimalExpCalculator evaluates exp(1) with arbitrary-precision decimal
// floating point. It shares no code with the series engines, which makes it
// a useful independent cross-check.
type DecimalExpCalculator struct{}

// Name returns the name of the algorithm.
func (c *DecimalExpCalculator) Name() string {
	return "Decimal exp(1) (apd)"
}

// CalculateCore computes exp(1) with places+guard fractional digits,
// rounding towards zero, then renders it.
func (c *DecimalExpCalculator) CalculateCore(ctx context.Context, reporter ProgressReporter, places int, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fracLen := places + opts.guardFor(places)

	dc := apd.BaseContext.WithPrecision(uint32(fracLen + 1))
	dc.Rounding = apd.RoundDown

	var e apd.Decimal
	if _, err := dc.Exp(&e, apd.New(1, 0)); err != nil {
		return "", fmt.Errorf("apd exp: %w", err)
	}
	reporter(0.9)

	intPart, frac, _ := strings.Cut(e.Text('f'), ".")
	if len(frac) < fracLen {
		frac += strings.Repeat("0", fracLen-len(frac))
	}
	return renderScaled(intPart+frac[:fracLen], fracLen, places, opts.Round), nil
}

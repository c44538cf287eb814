package euler

import "context"

// SeriesCalculator is the digit-array Taylor series engine (see Number).
type SeriesCalculator struct{}

// Name returns the name of the algorithm.
func (c *SeriesCalculator) Name() string {
	return "Taylor Series (digit array)"
}

// CalculateCore computes e with the fixed-point digit engine.
func (c *SeriesCalculator) CalculateCore(ctx context.Context, reporter ProgressReporter, places int, opts Options) (string, error) {
	x, err := Compute(ctx, places, opts, reporter)
	if err != nil {
		return "", err
	}
	return x.String(), nil
}

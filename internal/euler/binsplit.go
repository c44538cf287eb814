package euler

import (
	"context"
	"math/big"
)

// BinarySplittingCalculator sums the same series with exact rational
// arithmetic. Binary splitting reduces sum_{k=1..K} 1/k! to a single fraction
// P/Q built from balanced products, so the cost is dominated by a handful of
// large multiplications and one division instead of K passes over the digits.
type BinarySplittingCalculator struct{}

// Name returns the name of the algorithm.
func (c *BinarySplittingCalculator) Name() string {
	return "Binary Splitting (math/big)"
}

// CalculateCore computes e as 1 + P/Q scaled by 10^(places+guard).
func (c *BinarySplittingCalculator) CalculateCore(ctx context.Context, reporter ProgressReporter, places int, opts Options) (string, error) {
	fracLen := places + opts.guardFor(places)
	terms := termsFor(fracLen)

	p, q, err := splitBig(ctx, 0, terms)
	if err != nil {
		return "", err
	}
	reporter(0.5)

	// floor((Q + P) * 10^fracLen / Q)
	scale := new(big.Int).Exp(big.NewInt(base10), big.NewInt(int64(fracLen)), nil)
	num := new(big.Int).Add(q, p)
	num.Mul(num, scale)
	num.Quo(num, q)
	reporter(0.9)

	return renderScaled(num.String(), fracLen, places, opts.Round), nil
}

// splitBig returns P and Q with P/Q = sum_{k=a+1..b} a!/k!.
func splitBig(ctx context.Context, a, b int64) (*big.Int, *big.Int, error) {
	if b-a == 1 {
		return big.NewInt(1), big.NewInt(b), nil
	}
	if b-a >= SplitCancellationSpan {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
	}

	m := (a + b) / 2
	p1, q1, err := splitBig(ctx, a, m)
	if err != nil {
		return nil, nil, err
	}
	p2, q2, err := splitBig(ctx, m, b)
	if err != nil {
		return nil, nil, err
	}

	// P = P1*Q2 + P2, Q = Q1*Q2
	p1.Mul(p1, q2).Add(p1, p2)
	q1.Mul(q1, q2)
	return p1, q1, nil
}

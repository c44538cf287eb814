//go:build gmp

// This file provides a GMP-backed binary splitting calculator, compiled only
// with the "gmp" build tag (go build -tags=gmp) and libgmp installed.

package euler

import (
	"context"

	"github.com/ncw/gmp"
)

func init() {
	_ = RegisterCalculator("gmp", func() coreCalculator { return &GMPCalculator{} })
}

// GMPCalculator is BinarySplittingCalculator on GMP integers. It only pays
// off for very large precisions, where GMP's multiplication outperforms
// math/big enough to amortise the cgo calls.
type GMPCalculator struct{}

// Name returns the name of the algorithm.
func (c *GMPCalculator) Name() string {
	return "GMP (Binary Splitting)"
}

// CalculateCore computes e as 1 + P/Q scaled by 10^(places+guard).
func (c *GMPCalculator) CalculateCore(ctx context.Context, reporter ProgressReporter, places int, opts Options) (string, error) {
	fracLen := places + opts.guardFor(places)
	terms := termsFor(fracLen)

	p, q, err := splitGMP(ctx, 0, terms)
	if err != nil {
		return "", err
	}
	reporter(0.5)

	scale := new(gmp.Int).Exp(gmp.NewInt(base10), gmp.NewInt(int64(fracLen)), nil)
	num := new(gmp.Int).Add(q, p)
	num.Mul(num, scale)
	num.Quo(num, q)
	reporter(0.9)

	return renderScaled(num.String(), fracLen, places, opts.Round), nil
}

// splitGMP mirrors splitBig.
func splitGMP(ctx context.Context, a, b int64) (*gmp.Int, *gmp.Int, error) {
	if b-a == 1 {
		return gmp.NewInt(1), gmp.NewInt(b), nil
	}
	if b-a >= SplitCancellationSpan {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
	}

	m := (a + b) / 2
	p1, q1, err := splitGMP(ctx, a, m)
	if err != nil {
		return nil, nil, err
	}
	p2, q2, err := splitGMP(ctx, m, b)
	if err != nil {
		return nil, nil, err
	}

	p1.Mul(p1, q2)
	p1.Add(p1, p2)
	q1.Mul(q1, q2)
	return p1, q1, nil
}

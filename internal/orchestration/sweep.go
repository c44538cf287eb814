package orchestration

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/eulercalc/internal/errors"
	"github.com/agbru/eulercalc/internal/euler"
)

// SweepOptions configures a precision sweep.
type SweepOptions struct {
	// From and To bound the precisions checked, inclusive.
	From, To int
	// Step is the number of precisions per progress report.
	Step int
	// Workers bounds concurrent computations; zero means runtime.NumCPU().
	Workers int
}

// SweepProgress is reported after every completed block of Step precisions.
type SweepProgress struct {
	// Checked is the number of precisions verified, all of them correct and
	// contiguous from From.
	Checked int
	// Total is the number of precisions in the sweep.
	Total int
	// Precision is the highest precision in the verified block.
	Precision int
	// Elapsed is the time since the sweep started.
	Elapsed time.Duration
}

// SweepReport summarises a sweep.
type SweepReport struct {
	// Checked is the number of contiguous precisions verified correct from
	// From.
	Checked int
	// Total is the number of precisions requested.
	Total int
	// FirstFailure is the smallest precision whose expansion is wrong, or
	// zero when none is.
	FirstFailure int
	// Failure describes the wrong expansion when FirstFailure is set.
	Failure Verification
	// Duration is the wall-clock time of the sweep.
	Duration time.Duration
}

// Passed reports whether every precision was verified correct.
func (r SweepReport) Passed() bool {
	return r.FirstFailure == 0 && r.Checked == r.Total
}

// SweepExitCode maps the outcome of Sweep to a process exit code.
func SweepExitCode(r SweepReport, err error) int {
	switch {
	case err != nil:
		return apperrors.HandleCalculationError(err, 0, io.Discard, nil)
	case r.FirstFailure != 0:
		return apperrors.ExitErrorMismatch
	case !r.Passed():
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// Sweep computes e at every precision in [From, To] with calc and checks each
// expansion with v, stopping at the first wrong one. Precisions run
// concurrently but the report always names the smallest wrong precision, and
// every smaller one has been verified. Expansions are truncated regardless of
// opts.Round, because the reference is.
//
// A calculator or reference error aborts the sweep and is returned with the
// partial report; so is a context error.
func Sweep(ctx context.Context, calc euler.Calculator, v Verifier, opts SweepOptions, observer SweepObserver) (SweepReport, error) {
	if opts.From <= 0 || opts.To < opts.From {
		return SweepReport{}, fmt.Errorf("invalid sweep range [%d, %d]", opts.From, opts.To)
	}
	if opts.Step <= 0 {
		opts.Step = 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	total := opts.To - opts.From + 1
	state := newSweepState(opts, total, observer, start)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for p := opts.From; p <= opts.To; p++ {
		if gctx.Err() != nil || state.beyondFailure(p) {
			break
		}
		g.Go(func() error {
			if state.beyondFailure(p) {
				return nil
			}
			result, err := calc.Calculate(gctx, nil, 0, p, euler.Options{})
			if err != nil {
				return fmt.Errorf("computing %d places: %w", p, err)
			}
			verification, err := VerifyResult(v, result)
			if err != nil {
				return fmt.Errorf("verifying %d places: %w", p, err)
			}
			state.record(p, verification)
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	report := state.report()
	report.Duration = time.Since(start)
	return report, err
}

// sweepState tracks completion across workers.
type sweepState struct {
	opts     SweepOptions
	total    int
	observer SweepObserver
	start    time.Time

	mu           sync.Mutex
	done         []bool
	watermark    int // count of contiguous correct precisions from From
	firstFailure int
	failure      Verification
}

func newSweepState(opts SweepOptions, total int, observer SweepObserver, start time.Time) *sweepState {
	return &sweepState{opts: opts, total: total, observer: observer, start: start, done: make([]bool, total)}
}

// beyondFailure reports whether a wrong precision smaller than p is known.
func (s *sweepState) beyondFailure(p int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstFailure != 0 && p > s.firstFailure
}

func (s *sweepState) record(p int, v Verification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !v.Correct {
		if s.firstFailure == 0 || p < s.firstFailure {
			s.firstFailure = p
			s.failure = v
		}
		return
	}

	// The observer is called with mu held so reports arrive in order.
	s.done[p-s.opts.From] = true
	for s.watermark < s.total && s.done[s.watermark] {
		s.watermark++
		if s.observer != nil && (s.watermark%s.opts.Step == 0 || s.watermark == s.total) {
			s.observer.OnSweepProgress(SweepProgress{
				Checked:   s.watermark,
				Total:     s.total,
				Precision: s.opts.From + s.watermark - 1,
				Elapsed:   time.Since(s.start),
			})
		}
	}
}

func (s *sweepState) report() SweepReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SweepReport{
		Checked:      s.watermark,
		Total:        s.total,
		FirstFailure: s.firstFailure,
		Failure:      s.failure,
	}
}

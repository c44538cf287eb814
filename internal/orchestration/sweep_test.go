package orchestration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/eulercalc/internal/errors"
	"github.com/agbru/eulercalc/internal/euler"
	"github.com/agbru/eulercalc/internal/euler/mocks"
	"github.com/agbru/eulercalc/internal/reference"
)

type progressLog struct {
	mu      sync.Mutex
	reports []SweepProgress
}

func (l *progressLog) OnSweepProgress(p SweepProgress) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reports = append(l.reports, p)
}

func TestVerifyResult(t *testing.T) {
	t.Parallel()
	oracle := reference.Default()

	v, err := VerifyResult(oracle, "2.71828")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Correct || v.CorrectDigits != 5 || v.Places != 5 {
		t.Errorf("VerifyResult(2.71828) = %+v", v)
	}

	v, err = VerifyResult(oracle, "2.71829")
	if err != nil {
		t.Fatal(err)
	}
	if v.Correct || v.CorrectPrefix != "2.7182" || v.CorrectDigits != 4 {
		t.Errorf("VerifyResult(2.71829) = %+v", v)
	}

	v, err = VerifyResult(oracle, "3.14")
	if err != nil {
		t.Fatal(err)
	}
	if v.Correct || v.CorrectPrefix != "" || v.CorrectDigits != 0 {
		t.Errorf("VerifyResult(3.14) = %+v", v)
	}
}

func TestSweepAllCorrect(t *testing.T) {
	t.Parallel()
	calc := euler.NewCalculator(&euler.SeriesCalculator{})
	log := &progressLog{}

	report, err := Sweep(context.Background(), calc, reference.Default(), SweepOptions{From: 1, To: 300, Step: 100, Workers: 4}, log)
	if err != nil {
		t.Fatal(err)
	}
	if !report.Passed() || report.Checked != 300 || report.Total != 300 || report.FirstFailure != 0 {
		t.Errorf("unexpected report %+v", report)
	}

	if len(log.reports) != 3 {
		t.Fatalf("got %d progress reports, want 3: %+v", len(log.reports), log.reports)
	}
	for i, r := range log.reports {
		if want := (i + 1) * 100; r.Checked != want || r.Precision != want {
			t.Errorf("report %d = %+v, want Checked=Precision=%d", i, r, want)
		}
	}
}

func TestSweepReportsSmallestFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	real := euler.NewCalculator(&euler.BinarySplittingCalculator{})

	// Wrong from 57 places on, and again at 80.
	faulty := mocks.NewMockCalculator(ctrl)
	faulty.EXPECT().Name().Return("faulty").AnyTimes()
	faulty.EXPECT().
		Calculate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, ch chan<- euler.ProgressUpdate, idx, places int, opts euler.Options) (string, error) {
			s, err := real.Calculate(ctx, ch, idx, places, opts)
			if err != nil || places < 57 {
				return s, err
			}
			b := []byte(s)
			b[len(b)-1] = '0' + (b[len(b)-1]-'0'+1)%10
			return string(b), nil
		}).
		AnyTimes()

	report, err := Sweep(context.Background(), faulty, reference.Default(), SweepOptions{From: 1, To: 100, Step: 10, Workers: 8}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.Passed() {
		t.Fatal("sweep should fail")
	}
	if report.FirstFailure != 57 {
		t.Errorf("FirstFailure = %d, want 57", report.FirstFailure)
	}
	if report.Checked != 56 {
		t.Errorf("Checked = %d, want 56", report.Checked)
	}
	if report.Failure.CorrectDigits != 56 || report.Failure.Places != 57 {
		t.Errorf("Failure = %+v", report.Failure)
	}
}

func TestSweepCalculatorError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	calc := mocks.NewMockCalculator(ctrl)
	calc.EXPECT().Name().Return("broken").AnyTimes()
	calc.EXPECT().
		Calculate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", apperrors.CalculationError{Algorithm: "broken", Cause: errors.New("boom")}).
		MinTimes(1)

	_, err := Sweep(context.Background(), calc, reference.Default(), SweepOptions{From: 1, To: 20, Step: 5, Workers: 2}, nil)
	var calcErr apperrors.CalculationError
	if !errors.As(err, &calcErr) {
		t.Errorf("error = %v, want a CalculationError", err)
	}
}

func TestSweepReferenceOutOfRange(t *testing.T) {
	t.Parallel()
	calc := euler.NewCalculator(&euler.SeriesCalculator{})
	oracle := reference.NewOracle(tinySource{})
	_, err := Sweep(context.Background(), calc, oracle, SweepOptions{From: 1, To: 20, Step: 5, Workers: 2}, nil)
	if !errors.Is(err, apperrors.ErrOutOfRange) {
		t.Errorf("error = %v, want ErrOutOfRange", err)
	}
}

func TestSweepCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calc := euler.NewCalculator(&euler.SeriesCalculator{})
	report, err := Sweep(ctx, calc, reference.Default(), SweepOptions{From: 1, To: 1000, Step: 100}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if report.Passed() {
		t.Error("a canceled sweep cannot pass")
	}
}

func TestSweepInvalidRange(t *testing.T) {
	t.Parallel()
	calc := euler.NewCalculator(&euler.SeriesCalculator{})
	for _, opts := range []SweepOptions{{From: 0, To: 10}, {From: 10, To: 5}} {
		if _, err := Sweep(context.Background(), calc, reference.Default(), opts, nil); err == nil {
			t.Errorf("Sweep(%+v) should fail", opts)
		}
	}
}

func TestSweepExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		report SweepReport
		err    error
		want   int
	}{
		{"Passed", SweepReport{Checked: 10, Total: 10}, nil, apperrors.ExitSuccess},
		{"Mismatch", SweepReport{Checked: 3, Total: 10, FirstFailure: 4}, nil, apperrors.ExitErrorMismatch},
		{"Incomplete", SweepReport{Checked: 3, Total: 10}, nil, apperrors.ExitErrorGeneric},
		{"Timeout", SweepReport{}, context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"Reference", SweepReport{}, apperrors.ErrOutOfRange, apperrors.ExitErrorReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SweepExitCode(tt.report, tt.err); got != tt.want {
				t.Errorf("SweepExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

// Package euler computes the mathematical constant e to an arbitrary number
// of decimal places with exact arithmetic.
//
// The reference algorithm is a fixed-point digit-array summation of the
// series 1/n! (see Number). Alternative calculators based on binary splitting
// (math/big, GMP) and on decimal exponentiation (apd) produce the same string
// representation and are used to cross-check each other. All of them are
// exposed through the Calculator interface and a registry.
package euler

//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/eulercalc/internal/errors"
)

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "euler_calculations_total",
			Help: "The total number of e calculations processed",
		},
		[]string{"algorithm", "status"},
	)
	calculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "euler_calculation_duration_seconds",
			Help: "The duration of e calculations in seconds",
		},
		[]string{"algorithm"},
	)
	calculatedDigits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "euler_calculated_digits_total",
			Help: "The total number of decimal places of e produced",
		},
		[]string{"algorithm"},
	)
)

// Calculator is the interface the orchestration layer uses to run an e
// calculation, whatever the underlying algorithm.
type Calculator interface {
	// Calculate computes e to places decimal places and returns it as "2."
	// followed by exactly places digits. It is safe for concurrent use and
	// honours ctx cancellation. Progress updates are sent to progressChan
	// when it is non-nil.
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, places int, opts Options) (string, error)

	// Name returns the display name of the algorithm.
	Name() string
}

// coreCalculator is a bare algorithm. Inputs are already validated.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter ProgressReporter, places int, opts Options) (string, error)
	Name() string
}

// EulerCalculator decorates a coreCalculator with input validation, progress
// fan-out, metrics, tracing and logging.
type EulerCalculator struct {
	core coreCalculator
}

// NewCalculator wraps core. It panics if core is nil.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("euler: the `coreCalculator` implementation cannot be nil")
	}
	return &EulerCalculator{core: core}
}

// Name returns the name of the wrapped algorithm.
func (c *EulerCalculator) Name() string {
	return c.core.Name()
}

// Calculate implements Calculator by adapting progressChan to an observer.
func (c *EulerCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, places int, opts Options) (string, error) {
	subject := NewProgressSubject()
	if progressChan != nil {
		subject.Register(NewChannelObserver(progressChan))
	}
	return c.CalculateWithObservers(ctx, subject, calcIndex, places, opts)
}

// CalculateWithObservers runs the calculation, notifying every observer
// registered on subject. A nil subject disables progress reporting.
func (c *EulerCalculator) CalculateWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, places int, opts Options) (result string, err error) {
	algoName := c.core.Name()

	ctx, span := otel.Tracer("euler").Start(ctx, "Calculate")
	span.SetAttributes(
		attribute.String("euler.algorithm", algoName),
		attribute.Int("euler.places", places),
		attribute.Bool("euler.round", opts.Round),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			calculatedDigits.WithLabelValues(algoName).Add(float64(places))
		}
		calculationsTotal.WithLabelValues(algoName, status).Inc()
		calculationDuration.WithLabelValues(algoName).Observe(duration)

		log.Debug().
			Str("algo", algoName).
			Int("places", places).
			Float64("duration", duration).
			Str("status", status).
			Msg("calculation completed")
	}()

	if err := validatePlaces(places, opts); err != nil {
		return "", err
	}

	reporter := ProgressReporter(func(float64) {})
	if subject != nil {
		reporter = subject.Freeze(calcIndex)
	}

	result, err = c.core.CalculateCore(ctx, reporter, places, opts)
	if err != nil {
		return "", err
	}
	if len(result) != places+2 {
		return "", apperrors.CalculationError{
			Algorithm: algoName,
			Cause:     fmt.Errorf("produced %d characters, want %d", len(result), places+2),
		}
	}
	reporter(1.0)
	return result, nil
}

// validatePlaces rejects precisions the calculators cannot serve.
func validatePlaces(places int, opts Options) error {
	if places <= 0 {
		return apperrors.ValidationError{
			Field:   "decimalPlaces",
			Message: fmt.Sprintf("must be positive, got %d", places),
		}
	}
	if places > MaxDecimalPlaces {
		return apperrors.ValidationError{
			Field:   "decimalPlaces",
			Message: fmt.Sprintf("must not exceed %d, got %d", MaxDecimalPlaces, places),
		}
	}
	if opts.ExtraGuardDigits < 0 {
		return apperrors.ValidationError{
			Field:   "extraGuardDigits",
			Message: fmt.Sprintf("cannot be negative, got %d", opts.ExtraGuardDigits),
		}
	}
	return nil
}

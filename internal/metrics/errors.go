package metrics

import (
	"errors"
	"fmt"
)

var (
	// ErrDataInsufficient signals that a rate metric had no usable
	// denominator (no games, or an empty conditional subset).
	ErrDataInsufficient = errors.New("insufficient data for metric")

	// ErrMetricOutOfRange signals a computed value outside its declared
	// range, or raw inputs that can only come from corrupt upstream data.
	// Values are never clamped.
	ErrMetricOutOfRange = errors.New("metric out of declared range")

	// ErrPreconditionViolated signals that the caller broke the engine's
	// input contract (games not in ascending chronological order).
	ErrPreconditionViolated = errors.New("metrics precondition violated")
)

// InsufficientError names the metric that could not be computed.
type InsufficientError struct {
	Metric string
	Reason string
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("%s: %v (%s)", e.Metric, ErrDataInsufficient, e.Reason)
}

func (e *InsufficientError) Unwrap() error { return ErrDataInsufficient }

// RangeError carries the offending value alongside the declared range.
type RangeError struct {
	Metric string
	Value  float64
	Min    float64
	Max    float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %v: value %g outside [%g,%g]",
		e.Metric, ErrMetricOutOfRange, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrMetricOutOfRange }

package forecast

import "errors"

// Engine errors, matched by callers with errors.Is. The engine raises these
// synchronously and never recovers locally; the two documented exceptions
// (unknown seasonal keys resolve to 1.0, negative samples clamp to zero) are
// policies, not errors.
var (
	// ErrEmptySeries is returned when an operation receives no data points.
	ErrEmptySeries = errors.New("empty series")

	// ErrInsufficientHistory is returned when a series is shorter than the
	// configured smoothing window.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrInvalidHorizon is returned for a non-positive forecast horizon.
	ErrInvalidHorizon = errors.New("invalid horizon")

	// ErrInvalidConfig is returned for malformed configuration: bad weights,
	// non-positive trial counts, confidence outside (0,1), unknown
	// granularities.
	ErrInvalidConfig = errors.New("invalid config")
)

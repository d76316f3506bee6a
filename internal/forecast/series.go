// Package forecast implements the sales forecasting engine: granularity
// aggregation, seasonal adjustment factors, weighted sliding-window smoothing
// and Monte Carlo confidence intervals, chained together by an iterative
// multi-step forecaster.
package forecast

import (
	"math"
	"time"
)

// Point represents a single observation with time and value.
type Point struct {
	Time  time.Time
	Value float64
}

// Series represents an ordered collection of points, ascending by time.
type Series []Point

// Values extracts just the values from the series
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Times extracts just the times from the series
func (s Series) Times() []time.Time {
	times := make([]time.Time, len(s))
	for i, p := range s {
		times[i] = p.Time
	}
	return times
}

// Len returns the number of data points
func (s Series) Len() int {
	return len(s)
}

// Mean calculates the mean of all values
func (s Series) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range s {
		sum += p.Value
	}
	return sum / float64(len(s))
}

// StdDev calculates the sample standard deviation of all values
func (s Series) StdDev() float64 {
	if len(s) < 2 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, p := range s {
		diff := p.Value - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(s)-1))
}

// Last returns the final point of the series. The series must not be empty.
func (s Series) Last() Point {
	return s[len(s)-1]
}

// Clone returns an independent copy of the series. Stages that append
// synthetic points work on a clone so the caller's series stays intact.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}

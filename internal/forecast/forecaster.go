package forecast

import (
	"fmt"
	"time"
)

// Config bundles the per-request forecasting parameters.
type Config struct {
	Granularity Granularity
	Horizon     int
	Smoothing   SmoothingConfig
	MonteCarlo  MonteCarloConfig
}

// DefaultConfig returns the stock engine configuration for a granularity and
// horizon: 7-point ascending-ramp smoothing and 1000-trial sampling at 95%
// confidence.
func DefaultConfig(g Granularity, horizon int) Config {
	return Config{
		Granularity: g,
		Horizon:     horizon,
		Smoothing:   DefaultSmoothingConfig(),
		MonteCarlo:  DefaultMonteCarloConfig(),
	}
}

// Validate checks the horizon, granularity and component configurations.
func (c Config) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidHorizon, c.Horizon)
	}
	if !c.Granularity.Valid() {
		return fmt.Errorf("%w: unknown granularity %q", ErrInvalidConfig, string(c.Granularity))
	}
	if err := c.Smoothing.Validate(); err != nil {
		return err
	}
	return c.MonteCarlo.Validate()
}

// Step is a single forecast period.
type Step struct {
	Time  time.Time
	Value float64
	Lower float64
	Upper float64
}

// Result holds the forecast steps together with the aggregated historical
// series they were computed from and any non-fatal warnings.
type Result struct {
	Granularity Granularity
	History     Series
	Steps       []Step
	Warnings    []string
}

// Forecast produces cfg.Horizon future periods for the series. The input is
// aggregated once and the seasonal index built once from the aggregated
// history; each step then smooths the working series tail, applies the next
// period's seasonal factor, estimates the confidence interval, and feeds its
// point estimate back as synthetic history for the following step. The
// returned History is the aggregated series untouched by those synthetic
// points.
func Forecast(s Series, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	history, err := Aggregate(s, cfg.Granularity)
	if err != nil {
		return nil, err
	}

	// Seasonality stays historical-only: built once here and reused across
	// all steps, never rebuilt from appended synthetic points.
	index := BuildSeasonalIndex(history, cfg.Granularity)

	working := history.Clone()
	result := &Result{
		Granularity: cfg.Granularity,
		History:     history,
		Steps:       make([]Step, 0, cfg.Horizon),
	}

	unreliable := false
	for i := 0; i < cfg.Horizon; i++ {
		trend, err := Smooth(working, cfg.Smoothing)
		if err != nil {
			return nil, err
		}

		next := cfg.Granularity.Next(working.Last().Time)
		factor := index.FactorFor(next)

		mc := cfg.MonteCarlo
		if mc.Seed != 0 {
			// Stride by the worker count so per-worker streams never
			// overlap across steps.
			mc.Seed += int64(i * mcWorkers)
		}
		interval, err := Estimate(trend, factor, mc)
		if err != nil {
			return nil, err
		}
		if interval.Unreliable {
			unreliable = true
		}

		result.Steps = append(result.Steps, Step{
			Time:  next,
			Value: interval.Point,
			Lower: interval.Lower,
			Upper: interval.Upper,
		})
		working = append(working, Point{Time: next, Value: interval.Point})
	}

	if unreliable {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"confidence intervals may be unreliable: %d trials is below the %d minimum",
			cfg.MonteCarlo.Trials, minReliableTrials))
	}
	return result, nil
}

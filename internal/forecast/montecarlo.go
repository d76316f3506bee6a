package forecast

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"
)

// Monte Carlo defaults and reliability threshold.
const (
	DefaultTrials     = 1000
	DefaultVolatility = 0.1
	DefaultConfidence = 0.95

	// minReliableTrials is the trial count below which empirical percentiles
	// are too noisy to trust (their standard error grows as 1/sqrt(T)).
	// Smaller counts still estimate, but flag the interval as unreliable.
	minReliableTrials = 100

	// mcWorkers is the number of goroutines sample draws are split across.
	mcWorkers = 4
)

// MonteCarloConfig holds configuration for the interval estimator.
type MonteCarloConfig struct {
	// Trials is the number of random samples drawn per estimate.
	Trials int
	// Volatility scales the Gaussian noise: samples are drawn from
	// N(base, Volatility*|base|).
	Volatility float64
	// Confidence is the two-sided interval mass, in (0, 1).
	Confidence float64
	// Seed fixes the random source for reproducible intervals; zero seeds
	// from the clock.
	Seed int64
}

// DefaultMonteCarloConfig returns the stock 1000-trial estimator at 95%
// confidence with 10% volatility.
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		Trials:     DefaultTrials,
		Volatility: DefaultVolatility,
		Confidence: DefaultConfidence,
	}
}

// Validate checks trial count, volatility and confidence level.
func (c MonteCarloConfig) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.Volatility < 0 {
		return fmt.Errorf("%w: volatility must not be negative, got %g", ErrInvalidConfig, c.Volatility)
	}
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return fmt.Errorf("%w: confidence must be inside (0,1), got %g", ErrInvalidConfig, c.Confidence)
	}
	return nil
}

// Interval is the uncertainty estimate for a single future period.
type Interval struct {
	Point float64
	Lower float64
	Upper float64
	// Unreliable marks intervals computed from fewer than minReliableTrials
	// samples. A warning, never an error.
	Unreliable bool
}

// Estimate draws cfg.Trials Gaussian samples around base = trend*factor and
// returns the base itself as the point estimate together with the empirical
// (1-c)/2 and 1-(1-c)/2 percentiles as bounds. The point estimate ignores
// the samples so that repeated calls with different seeds agree on it.
// Negative samples clamp to zero before percentiles are taken: sales cannot
// be negative.
func Estimate(trend, factor float64, cfg MonteCarloConfig) (Interval, error) {
	if err := cfg.Validate(); err != nil {
		return Interval{}, err
	}

	base := trend * factor
	sigma := cfg.Volatility * math.Abs(base)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Draws are mutually independent: split them across workers and merge
	// before the sort. Merge order cannot affect the sorted percentiles.
	workers := mcWorkers
	if cfg.Trials < minReliableTrials {
		workers = 1
	}
	counts := make([]int, workers)
	for i := range counts {
		counts[i] = cfg.Trials / workers
	}
	counts[0] += cfg.Trials % workers

	results := make(chan []float64, workers)
	for g := 0; g < workers; g++ {
		go func(count int, seed int64) {
			rng := rand.New(rand.NewSource(seed))
			samples := make([]float64, count)
			for i := range samples {
				v := base + rng.NormFloat64()*sigma
				if v < 0 {
					v = 0
				}
				samples[i] = v
			}
			results <- samples
		}(counts[g], seed+int64(g))
	}

	samples := make([]float64, 0, cfg.Trials)
	for g := 0; g < workers; g++ {
		samples = append(samples, <-results...)
	}
	sort.Float64s(samples)

	alpha := (1 - cfg.Confidence) / 2
	lower := samples[percentileIndex(cfg.Trials, alpha)]
	upper := samples[percentileIndex(cfg.Trials, 1-alpha)]

	// Tiny trial counts can put both empirical bounds on one side of the
	// base; the interval must always bracket the point estimate.
	lower = math.Min(lower, base)
	upper = math.Max(upper, base)

	return Interval{
		Point:      base,
		Lower:      lower,
		Upper:      upper,
		Unreliable: cfg.Trials < minReliableTrials,
	}, nil
}

// percentileIndex maps a quantile onto an index into a sorted sample slice.
func percentileIndex(n int, q float64) int {
	idx := int(float64(n) * q)
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

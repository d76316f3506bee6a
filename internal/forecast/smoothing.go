package forecast

import "fmt"

// DefaultWindow is the trailing window size used when none is configured.
const DefaultWindow = 7

// SmoothingConfig holds configuration for the sliding-window smoother.
type SmoothingConfig struct {
	// Window is the number of trailing points the trend estimate covers.
	Window int
	// Weights is applied in chronological order across the window: the last
	// weight multiplies the most recent point. Nil selects the default
	// linearly ascending ramp 1..Window. Weights are normalized to sum to
	// one before use.
	Weights []float64
}

// DefaultSmoothingConfig returns the stock 7-point ascending-ramp smoother.
func DefaultSmoothingConfig() SmoothingConfig {
	return SmoothingConfig{Window: DefaultWindow}
}

// Validate checks the window and weight shape.
func (c SmoothingConfig) Validate() error {
	if c.Window < 1 {
		return fmt.Errorf("%w: window must be at least 1, got %d", ErrInvalidConfig, c.Window)
	}
	if c.Weights == nil {
		return nil
	}
	if len(c.Weights) != c.Window {
		return fmt.Errorf("%w: %d weights for window %d", ErrInvalidConfig, len(c.Weights), c.Window)
	}
	sum := 0.0
	for i, w := range c.Weights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight at index %d", ErrInvalidConfig, i)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("%w: weights sum to zero", ErrInvalidConfig)
	}
	return nil
}

// normalized returns the effective weight sequence, summing to one.
func (c SmoothingConfig) normalized() []float64 {
	weights := c.Weights
	if weights == nil {
		weights = make([]float64, c.Window)
		for i := range weights {
			weights[i] = float64(i + 1)
		}
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / sum
	}
	return out
}

// Smooth computes the weighted average over the last Window points of the
// series, the trend estimate for the next period. Weight order is a
// correctness invariant: the last weight pairs with the newest point.
func Smooth(s Series, cfg SmoothingConfig) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if len(s) < cfg.Window {
		return 0, fmt.Errorf("%w: need %d points, have %d", ErrInsufficientHistory, cfg.Window, len(s))
	}

	weights := cfg.normalized()
	tail := s[len(s)-cfg.Window:]
	trend := 0.0
	for i, p := range tail {
		trend += weights[i] * p.Value
	}
	return trend, nil
}

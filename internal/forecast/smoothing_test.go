package forecast

import (
	"errors"
	"math"
	"testing"
)

func TestSmooth_DotProduct(t *testing.T) {
	s := Series{
		{Time: testBaseDay, Value: 120},
		{Time: testBaseDay.AddDate(0, 0, 1), Value: 135},
		{Time: testBaseDay.AddDate(0, 0, 2), Value: 98},
	}
	cfg := SmoothingConfig{Window: 3, Weights: []float64{0.2, 0.3, 0.5}}

	got, err := Smooth(s, cfg)
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}

	// 0.2*120 + 0.3*135 + 0.5*98 = 113.5
	if math.Abs(got-113.5) > 1e-9 {
		t.Errorf("Expected 113.5, got %v", got)
	}
}

func TestSmooth_ChronologicalWeightOrder(t *testing.T) {
	s := Series{
		{Time: testBaseDay, Value: 10},
		{Time: testBaseDay.AddDate(0, 0, 1), Value: 20},
		{Time: testBaseDay.AddDate(0, 0, 2), Value: 100},
	}

	// All weight on the last position must select the newest point.
	got, err := Smooth(s, SmoothingConfig{Window: 3, Weights: []float64{0, 0, 1}})
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	if got != 100 {
		t.Errorf("Last weight must pair with the newest point: got %v", got)
	}

	// All weight on the first position must select the oldest of the window.
	got, err = Smooth(s, SmoothingConfig{Window: 3, Weights: []float64{1, 0, 0}})
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	if got != 10 {
		t.Errorf("First weight must pair with the oldest point: got %v", got)
	}
}

func TestSmooth_NormalizesWeights(t *testing.T) {
	s := generateDailySeries(4, 50, 0)

	// 2:3:5 is the same shape as 0.2:0.3:0.5 after normalization.
	got, err := Smooth(s, SmoothingConfig{Window: 3, Weights: []float64{2, 3, 5}})
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("Expected 50 on a flat series, got %v", got)
	}
}

func TestSmooth_DefaultRamp(t *testing.T) {
	// Values 1..7: the ascending ramp weights newest heaviest, so the result
	// must land above the plain average of 4.
	s := generateDailySeries(7, 1, 1)

	got, err := Smooth(s, DefaultSmoothingConfig())
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}

	// sum(i*i for i=1..7)/28 = 140/28 = 5
	if math.Abs(got-5) > 1e-9 {
		t.Errorf("Expected 5, got %v", got)
	}
}

func TestSmooth_UsesWindowTail(t *testing.T) {
	// Only the last Window points may contribute.
	s := Series{
		{Time: testBaseDay, Value: 1e6},
		{Time: testBaseDay.AddDate(0, 0, 1), Value: 10},
		{Time: testBaseDay.AddDate(0, 0, 2), Value: 20},
	}

	got, err := Smooth(s, SmoothingConfig{Window: 2, Weights: []float64{0.5, 0.5}})
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	if math.Abs(got-15) > 1e-9 {
		t.Errorf("Points outside the window leaked in: got %v", got)
	}
}

func TestSmooth_InsufficientHistory(t *testing.T) {
	s := generateDailySeries(2, 100, 0)

	_, err := Smooth(s, SmoothingConfig{Window: 3})
	if err == nil {
		t.Fatal("Expected error for series shorter than window")
	}
	if !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("Expected ErrInsufficientHistory, got %v", err)
	}
}

func TestSmoothingConfig_Validate(t *testing.T) {
	cases := []struct {
		name string
		cfg  SmoothingConfig
	}{
		{"zero window", SmoothingConfig{Window: 0}},
		{"negative window", SmoothingConfig{Window: -2}},
		{"weight count mismatch", SmoothingConfig{Window: 3, Weights: []float64{0.5, 0.5}}},
		{"negative weight", SmoothingConfig{Window: 2, Weights: []float64{1.5, -0.5}}},
		{"zero weight sum", SmoothingConfig{Window: 2, Weights: []float64{0, 0}}},
	}
	for _, c := range cases {
		err := c.cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", c.name, err)
		}
	}

	if err := (SmoothingConfig{Window: 3}).Validate(); err != nil {
		t.Errorf("Nil weights must be valid: %v", err)
	}
}

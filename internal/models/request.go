package models

import (
	"fmt"
	"time"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/utils"
)

// DateLayout is the wire format for sale dates. RFC3339 timestamps are
// accepted on input and truncated to their day.
const DateLayout = "2006-01-02"

// ParseDate parses a request date in DateLayout or RFC3339 format.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected %s or RFC3339", s, DateLayout)
}

// SalesPoint represents a single sales observation
type SalesPoint struct {
	Date  string  `json:"date" validate:"required"`
	Sales float64 `json:"sales" validate:"required"`
}

// Validate checks the date format and sales value of a single point.
func (p SalesPoint) Validate() error {
	if _, err := ParseDate(p.Date); err != nil {
		return err
	}
	if !utils.IsFinite(p.Sales) {
		return fmt.Errorf("sales value for %s is not a finite number", p.Date)
	}
	if p.Sales < 0 {
		return fmt.Errorf("sales value for %s must not be negative, got %g", p.Date, p.Sales)
	}
	return nil
}

// SalesWriteRequest represents a sales write request. Either a single
// observation (date + sales) or a batch (points) may be supplied.
type SalesWriteRequest struct {
	Date   string       `json:"date,omitempty"`
	Sales  *float64     `json:"sales,omitempty"`
	Points []SalesPoint `json:"points,omitempty"`
}

// Normalize folds the single-observation form into the batch form and
// validates every point.
func (r *SalesWriteRequest) Normalize() ([]SalesPoint, error) {
	points := r.Points
	if r.Date != "" || r.Sales != nil {
		if r.Date == "" || r.Sales == nil {
			return nil, fmt.Errorf("single observation requires both 'date' and 'sales'")
		}
		points = append([]SalesPoint{{Date: r.Date, Sales: *r.Sales}}, points...)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("request contains no sales points")
	}
	if len(points) > utils.MaxBatchSize {
		return nil, fmt.Errorf("too many points in one request: %d exceeds the %d limit",
			len(points), utils.MaxBatchSize)
	}

	for _, p := range points {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return points, nil
}

// ForecastRequest represents the forecast request body. Zero values select
// the configured defaults; Volatility is a pointer because zero noise is a
// valid setting.
type ForecastRequest struct {
	Granularity string   `json:"granularity"`
	Horizon     int      `json:"horizon"`
	Window      int      `json:"window"`
	Trials      int      `json:"trials"`
	Volatility  *float64 `json:"volatility"`
	Confidence  float64  `json:"confidence"`
}

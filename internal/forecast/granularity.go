package forecast

import (
	"fmt"
	"strings"
	"time"
)

// Granularity represents the time bucket size at which history is aggregated
// and forecasts are produced.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// ParseGranularity maps a request string onto a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case GranularityDaily:
		return GranularityDaily, nil
	case GranularityMonthly:
		return GranularityMonthly, nil
	case GranularityYearly:
		return GranularityYearly, nil
	default:
		return "", fmt.Errorf("%w: unknown granularity %q", ErrInvalidConfig, s)
	}
}

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDaily, GranularityMonthly, GranularityYearly:
		return true
	}
	return false
}

// Truncate returns the start of the bucket containing t, in UTC. Bucket
// starts are the canonical timestamps for aggregated points.
func (g Granularity) Truncate(t time.Time) time.Time {
	t = t.UTC()
	switch g {
	case GranularityMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case GranularityYearly:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// Next returns the start of the bucket one period after the one containing t.
func (g Granularity) Next(t time.Time) time.Time {
	switch g {
	case GranularityMonthly:
		return g.Truncate(t).AddDate(0, 1, 0)
	case GranularityYearly:
		return g.Truncate(t).AddDate(1, 0, 0)
	default:
		return g.Truncate(t).AddDate(0, 0, 1)
	}
}

// HasCycle reports whether the granularity defines a seasonal sub-cycle.
// Yearly buckets have none, so yearly seasonality is always neutral.
func (g Granularity) HasCycle() bool {
	return g == GranularityDaily || g == GranularityMonthly
}

// CycleKey returns the seasonal position of t within its cycle: the ISO week
// number (1-53) for daily series, the month of year (1-12) for monthly
// series. Granularities without a sub-cycle report key 0.
func (g Granularity) CycleKey(t time.Time) int {
	switch g {
	case GranularityDaily:
		_, week := t.ISOWeek()
		return week
	case GranularityMonthly:
		return int(t.Month())
	default:
		return 0
	}
}

// Cycle returns the identifier of the seasonal cycle containing t: the ISO
// year for weekly keys, the calendar year otherwise.
func (g Granularity) Cycle(t time.Time) int {
	if g == GranularityDaily {
		year, _ := t.ISOWeek()
		return year
	}
	return t.Year()
}

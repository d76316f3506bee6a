package forecast

import (
	"time"
)

// Common test data and helpers for the engine tests

var testBaseDay = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// generateDailySeries creates n consecutive daily points starting at
// testBaseDay with values base, base+step, base+2*step, ...
func generateDailySeries(n int, base, step float64) Series {
	s := make(Series, n)
	for i := 0; i < n; i++ {
		s[i] = Point{
			Time:  testBaseDay.AddDate(0, 0, i),
			Value: base + step*float64(i),
		}
	}
	return s
}

// generateMonthlySeries creates n consecutive month-start points beginning at
// the given year and month.
func generateMonthlySeries(year int, month time.Month, n int, values func(i int) float64) Series {
	s := make(Series, n)
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s[i] = Point{Time: start.AddDate(0, i, 0), Value: values(i)}
	}
	return s
}

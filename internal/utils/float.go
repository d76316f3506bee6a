package utils

import "math"

// Round2 rounds a value to two decimal places.
// Forecast quantities and sales totals are reported at cent precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// IsFinite reports whether v is a usable sales quantity, i.e. neither NaN
// nor an infinity. Parsed CSV rows and JSON payloads are checked with this
// before they reach the store.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package forecast

import "time"

// SeasonalIndex maps cycle positions (ISO week number, month of year) to
// multiplicative adjustment factors derived from historical data. It is built
// once per forecast and read-only afterwards.
type SeasonalIndex struct {
	granularity Granularity
	factors     map[int]float64
}

// BuildSeasonalIndex derives the per-position factors: each point contributes
// its value/overall-mean ratio to its cycle position, and a position's factor
// is the mean of its ratios. With fewer than two observed cycles (e.g. a
// single year of data), a non-positive overall mean, or a granularity without
// a sub-cycle, the index is neutral and every lookup answers 1.0.
func BuildSeasonalIndex(s Series, g Granularity) *SeasonalIndex {
	idx := &SeasonalIndex{granularity: g}
	if !g.HasCycle() || len(s) == 0 {
		return idx
	}

	mean := s.Mean()
	if mean <= 0 {
		return idx
	}

	cycles := make(map[int]struct{})
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, p := range s {
		key := g.CycleKey(p.Time)
		cycles[g.Cycle(p.Time)] = struct{}{}
		sums[key] += p.Value / mean
		counts[key]++
	}
	if len(cycles) < 2 {
		return idx
	}

	idx.factors = make(map[int]float64, len(sums))
	for key, sum := range sums {
		idx.factors[key] = sum / float64(counts[key])
	}
	return idx
}

// Factor returns the adjustment for a cycle position. Positions never seen
// during build resolve to exactly 1.0; the explicit branch is the documented
// neutral policy, not a lookup failure.
func (si *SeasonalIndex) Factor(key int) float64 {
	if f, ok := si.factors[key]; ok {
		return f
	}
	return 1.0
}

// FactorFor returns the adjustment for the cycle position containing t.
func (si *SeasonalIndex) FactorFor(t time.Time) float64 {
	if !si.granularity.HasCycle() {
		return 1.0
	}
	return si.Factor(si.granularity.CycleKey(t))
}

// Neutral reports whether the index applies no adjustment anywhere.
func (si *SeasonalIndex) Neutral() bool {
	return len(si.factors) == 0
}

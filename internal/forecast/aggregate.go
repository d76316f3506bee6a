package forecast

import (
	"fmt"
	"sort"
	"time"
)

// Aggregate groups a series into buckets of the requested granularity,
// summing the values per bucket, and emits one point per represented bucket
// at the bucket start, sorted ascending. Buckets with no input points are not
// synthesized; sparse series stay sparse.
//
// Aggregating an already-daily series at daily granularity returns the same
// series, with exact-duplicate days collapsed by summing.
func Aggregate(s Series, g Granularity) (Series, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: nothing to aggregate", ErrEmptySeries)
	}

	buckets := make(map[time.Time]float64)
	for _, p := range s {
		buckets[g.Truncate(p.Time)] += p.Value
	}

	out := make(Series, 0, len(buckets))
	for t, v := range buckets {
		out = append(out, Point{Time: t, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out, nil
}

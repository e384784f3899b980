package stats

import (
	"slices"
	"time"
)

// Distribution summarizes every duration a Timer observed.
type Distribution struct {
	Count  int           `json:"count"     msgpack:"count"     codec:"count"`
	Mean   time.Duration `json:"mean_ns"   msgpack:"mean_ns"   codec:"mean_ns"`
	Median time.Duration `json:"median_ns" msgpack:"median_ns" codec:"median_ns"`
	P95    time.Duration `json:"p95_ns"    msgpack:"p95_ns"    codec:"p95_ns"`
	Max    time.Duration `json:"max_ns"    msgpack:"max_ns"    codec:"max_ns"`
}

// Distribution returns the mean, median, 95th percentile and maximum of the
// observed durations. An empty timer yields the zero value.
func (t *Timer) Distribution() Distribution {
	t.mu.RLock()
	values := slices.Clone(t.durations)
	t.mu.RUnlock()

	if len(values) == 0 {
		return Distribution{}
	}

	slices.Sort(values)

	var sum time.Duration
	for _, v := range values {
		sum += v
	}

	mid := len(values) / 2

	median := values[mid]
	if len(values)%2 == 0 {
		median = (values[mid-1] + values[mid]) / 2
	}

	return Distribution{
		Count:  len(values),
		Mean:   sum / time.Duration(len(values)),
		Median: median,
		P95:    values[min(len(values)*95/100, len(values)-1)],
		Max:    values[len(values)-1],
	}
}

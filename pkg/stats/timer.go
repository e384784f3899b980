// Package stats tracks the wall-clock timing of repeated strategy runs.
package stats

import (
	"sync"
	"time"
)

// Stats is a snapshot of a Timer.
type Stats struct {
	Runs int           `json:"runs"    msgpack:"runs"    codec:"runs"`    // number of observed runs
	Last time.Duration `json:"last_ns" msgpack:"last_ns" codec:"last_ns"` // most recent run
	Min  time.Duration `json:"min_ns"  msgpack:"min_ns"  codec:"min_ns"`  // fastest run so far
}

// Timer records run durations. The last duration is overwritten on every
// observation while the minimum persists for the lifetime of the Timer.
type Timer struct {
	mu        sync.RWMutex // protects the fields below
	stats     Stats
	minimum   []time.Duration // minimum after each observation
	durations []time.Duration // every observation, in order
}

// NewTimer creates an empty timer.
func NewTimer() *Timer {
	return &Timer{}
}

// Observe records one run duration.
func (t *Timer) Observe(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stats.Runs == 0 || d < t.stats.Min {
		t.stats.Min = d
	}

	t.stats.Last = d
	t.stats.Runs++
	t.minimum = append(t.minimum, t.stats.Min)
	t.durations = append(t.durations, d)
}

// Measure runs fn, records its wall-clock duration and returns fn's error.
func (t *Timer) Measure(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	t.Observe(elapsed)

	return elapsed, err
}

// GetStats returns the current snapshot.
func (t *Timer) GetStats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.stats
}

// MinimumHistory returns the minimum observed after each run, in run order.
func (t *Timer) MinimumHistory() []time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]time.Duration, len(t.minimum))
	copy(out, t.minimum)

	return out
}

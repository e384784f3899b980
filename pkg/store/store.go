// Package store holds the per-run destination of the daily statistics: a
// fixed array of one slot per simulated day.
//
// Producers that run concurrently must target disjoint slots; the store does
// not lock. Index assignment is the caller's job (an atomic counter for the
// worker pool, range boundaries for fork-join), and it is what guarantees
// disjointness.
package store

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/sentinel"
	"github.com/hyp3rd/dailystats/pkg/aggregate"
)

// ResultStore is a pre-sized sequence of day slots.
type ResultStore struct {
	slots   []aggregate.DailyStatistic
	written []bool
}

// New returns a store with capacity slots, all zero-valued and unwritten.
func New(capacity int) *ResultStore {
	if capacity < 0 {
		capacity = 0
	}

	return &ResultStore{
		slots:   make([]aggregate.DailyStatistic, capacity),
		written: make([]bool, capacity),
	}
}

// NewYear returns a store sized for one simulated year.
func NewYear() *ResultStore {
	return New(constants.DaysPerYear)
}

// Capacity returns the number of slots.
func (s *ResultStore) Capacity() int { return len(s.slots) }

// Set writes stat into slot index. The slot's DayIndex is forced to index.
// Writing an index out of range, or a slot already written during this run,
// is an invariant violation.
func (s *ResultStore) Set(index int, stat aggregate.DailyStatistic) error {
	if index < 0 || index >= len(s.slots) {
		return ewrap.Wrapf(sentinel.ErrSlotOutOfRange, "index %d, capacity %d", index, len(s.slots))
	}

	if s.written[index] {
		return ewrap.Wrapf(sentinel.ErrSlotWritten, "index %d", index)
	}

	stat.DayIndex = index
	s.slots[index] = stat
	s.written[index] = true

	return nil
}

// Get returns slot index and whether it was written.
func (s *ResultStore) Get(index int) (aggregate.DailyStatistic, bool) {
	if index < 0 || index >= len(s.slots) {
		return aggregate.DailyStatistic{}, false
	}

	return s.slots[index], s.written[index]
}

// Populated returns the number of written slots.
// It must not be called while producers are still writing.
func (s *ResultStore) Populated() int {
	n := 0

	for _, ok := range s.written {
		if ok {
			n++
		}
	}

	return n
}

// Days returns a copy of the written slots in index order.
// It must not be called while producers are still writing.
func (s *ResultStore) Days() []aggregate.DailyStatistic {
	days := make([]aggregate.DailyStatistic, 0, len(s.slots))

	for i, ok := range s.written {
		if ok {
			days = append(days, s.slots[i])
		}
	}

	return days
}

// Reset clears every slot so the store can serve another run.
func (s *ResultStore) Reset() {
	clear(s.slots)
	clear(s.written)
}

package dailystats

import (
	"sync"
	"sync/atomic"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/pkg/reading"
	"github.com/hyp3rd/dailystats/pkg/store"
)

// TickRange is an inclusive range of ticks.
type TickRange struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// RunContext is the state owned by one strategy invocation. A fresh context
// is built for every run, so repeated runs never share a store or a counter.
type RunContext struct {
	// Run is the 1-based invocation number.
	Run int
	// Store receives one statistic per day.
	Store *store.ResultStore
	// Seeder hands out one independent generator per producer.
	Seeder *reading.Seeder

	next atomic.Int64

	mu   sync.Mutex
	gaps []TickRange
}

// NewRunContext returns the context of invocation run.
func NewRunContext(run int, seeder *reading.Seeder) *RunContext {
	return &RunContext{
		Run:    run,
		Store:  store.NewYear(),
		Seeder: seeder,
	}
}

// NextDay hands out the next free day slot. It is the only synchronized
// index assignment of a run.
func (rc *RunContext) NextDay() int {
	return int(rc.next.Add(1) - 1)
}

// ResetDays rewinds the day counter.
func (rc *RunContext) ResetDays() {
	rc.next.Store(0)
}

// RecordGap notes a tick range that the run deliberately left uncovered.
func (rc *RunContext) RecordGap(r TickRange) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.gaps = append(rc.gaps, r)
}

// Gaps returns the uncovered tick ranges.
func (rc *RunContext) Gaps() []TickRange {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	out := make([]TickRange, len(rc.gaps))
	copy(out, rc.gaps)

	return out
}

// dayBuffers recycles day-sized backing arrays between units of work. Every
// unit refills the whole buffer, so no reading survives a round trip.
var dayBuffers = sync.Pool{
	New: func() any {
		buf := make([]float64, constants.DaySize)

		return &buf
	},
}

func acquireDayBuffer() *[]float64 {
	return dayBuffers.Get().(*[]float64) //nolint:forcetypeassert
}

func releaseDayBuffer(buf *[]float64) {
	dayBuffers.Put(buf)
}

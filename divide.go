package dailystats

import (
	"context"
	"errors"
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/sentinel"
	"github.com/hyp3rd/dailystats/pkg/aggregate"
)

// DivideAndConquer halves the tick horizon recursively, depth times, and
// runs one leaf task per final sub-range. A leaf owns the days whose closing
// boundary falls inside its range, so each leaf writes the true calendar
// index of its days and leaves never share a slot.
//
// A split whose pivot is not below TotalTicks-DaySize is skipped and its
// whole range stays uncovered; the range is recorded as a gap on the run.
// With the full horizon this first happens at depth 8, dropping two days.
type DivideAndConquer struct {
	depth int
}

// NewDivideAndConquer returns the fork-join strategy. depth must lie in
// [0, maxDepth].
func NewDivideAndConquer(depth, maxDepth int) (*DivideAndConquer, error) {
	if depth < 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidParameter, "depth %d", depth)
	}

	if depth > maxDepth {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidDepth, "depth %d, maximum %d", depth, maxDepth)
	}

	return &DivideAndConquer{depth: depth}, nil
}

// Name implements Strategy.
func (*DivideAndConquer) Name() string { return constants.DivideStrategy }

// Value implements Strategy.
func (d *DivideAndConquer) Value() int { return d.depth }

// Execute implements Strategy. It returns once the whole task tree has joined.
func (d *DivideAndConquer) Execute(_ context.Context, run *RunContext) error {
	return d.split(run, TickRange{Begin: 1, End: constants.TotalTicks}, d.depth, 1)
}

// Pivot returns the split point of [begin, end], moved half a day forward
// when the midpoint is not a day boundary and kept inside the range.
func Pivot(begin, end int) int {
	pivot := (begin + end) / 2
	if pivot%constants.DaySize != 0 {
		pivot += constants.DaySize / 2
	}

	return min(max(pivot, begin), end)
}

// split walks the task tree. node is the heap index of r (root 1, children
// 2n and 2n+1) and seeds the leaf generator.
func (d *DivideAndConquer) split(run *RunContext, r TickRange, depth int, node uint64) error {
	if depth == 0 {
		return fork(func() error { return leaf(run, r, node) })
	}

	pivot := Pivot(r.Begin, r.End)
	if pivot >= constants.TotalTicks-constants.DaySize {
		run.RecordGap(r)

		return nil
	}

	return fork(
		func() error { return d.split(run, TickRange{Begin: r.Begin, End: pivot}, depth-1, 2*node) },
		func() error { return d.split(run, TickRange{Begin: pivot, End: r.End}, depth-1, 2*node+1) },
	)
}

// leaf aggregates every day whose closing boundary lies in (r.Begin, r.End].
func leaf(run *RunContext, r TickRange, node uint64) error {
	buf := acquireDayBuffer()
	defer releaseDayBuffer(buf)

	gen := run.Seeder.Generator(node)

	first := (r.Begin/constants.DaySize + 1) * constants.DaySize
	for boundary := first; boundary <= r.End; boundary += constants.DaySize {
		day := boundary/constants.DaySize - 1

		gen.Fill(*buf)

		stat, err := aggregate.Compute(day, *buf)
		if err != nil {
			return ewrap.Wrapf(err, "leaf [%d, %d]", r.Begin, r.End)
		}

		err = run.Store.Set(day, stat)
		if err != nil {
			return ewrap.Wrapf(err, "leaf [%d, %d]", r.Begin, r.End)
		}
	}

	return nil
}

// fork runs every task on its own goroutine and joins them all before
// returning. A panicking task is reported as a failed unit.
func fork(tasks ...func() error) error {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	eg := ewrap.NewErrorGroup()

	for _, task := range tasks {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := runJob(task)
			if err != nil {
				mu.Lock()
				eg.Add(err)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	err := eg.ErrorOrNil()
	if err == nil || errors.Is(err, sentinel.ErrUnitFailed) {
		return err
	}

	return ewrap.Wrapf(sentinel.ErrUnitFailed, "%v", err)
}

package dailystats

import (
	"context"
	"runtime"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/pkg/aggregate"
)

// ThreadPool submits one independent unit of work per day to a fixed-size
// worker pool. Each unit generates a fresh day of readings, aggregates it
// and writes the result to the slot handed out by the run's atomic counter.
// Slots follow completion order, so a slot index is not a calendar day.
type ThreadPool struct {
	requested int
	workers   int
}

// NewThreadPool returns the pool strategy. workers is clamped to at least
// one and, with hardwareCap, to at most runtime.NumCPU().
func NewThreadPool(workers int, hardwareCap bool) *ThreadPool {
	effective := max(workers, 1)

	if hardwareCap {
		effective = min(effective, runtime.NumCPU())
	}

	return &ThreadPool{requested: workers, workers: effective}
}

// Name implements Strategy.
func (*ThreadPool) Name() string { return constants.PoolStrategy }

// Value implements Strategy. It reports the requested worker count.
func (t *ThreadPool) Value() int { return t.requested }

// Workers returns the effective worker count.
func (t *ThreadPool) Workers() int { return t.workers }

// Execute implements Strategy. It returns once every unit has finished.
func (t *ThreadPool) Execute(_ context.Context, run *RunContext) error {
	pool := NewWorkerPool(t.workers)
	defer pool.Shutdown()

	for unit := range constants.DaysPerYear {
		pool.Enqueue(func() error {
			return dayUnit(run, uint64(unit)) //nolint:gosec
		})
	}

	err := pool.Wait()

	run.ResetDays()

	return err
}

func dayUnit(run *RunContext, stream uint64) error {
	buf := acquireDayBuffer()
	defer releaseDayBuffer(buf)

	run.Seeder.Generator(stream).Fill(*buf)

	day := run.NextDay()

	stat, err := aggregate.Compute(day, *buf)
	if err != nil {
		return err
	}

	return run.Store.Set(day, stat)
}

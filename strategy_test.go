package dailystats

import (
	"context"
	"errors"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/sentinel"
	"github.com/hyp3rd/dailystats/pkg/aggregate"
	"github.com/hyp3rd/dailystats/pkg/reading"
)

const testSeed = 0x5eed

func newTestRun() *RunContext {
	return NewRunContext(1, reading.NewSeeder(testSeed))
}

// assertContiguous checks that days holds exactly indices 0..n-1 with
// readings inside the generator range.
func assertContiguous(t *testing.T, days []aggregate.DailyStatistic, n int) {
	t.Helper()

	assert.Equal(t, n, len(days))

	for i, stat := range days {
		assert.Equal(t, i, stat.DayIndex)
		assert.True(t, stat.Mean >= constants.ReadingMin && stat.Mean < constants.ReadingMax)
		assert.True(t, stat.Median >= constants.ReadingMin && stat.Median < constants.ReadingMax)
	}
}

func TestSerial_InclusiveHorizon(t *testing.T) {
	s := NewSerial(true)
	assert.Equal(t, constants.SerialStrategy, s.Name())
	assert.Equal(t, 0, s.Value())
	assert.Equal(t, constants.TotalTicks, s.LastTick())

	run := newTestRun()
	assert.NoError(t, s.Execute(context.Background(), run))
	assertContiguous(t, run.Store.Days(), constants.DaysPerYear)
}

func TestSerial_ExclusiveHorizonDropsLastDay(t *testing.T) {
	if testing.Short() {
		t.Skip("full-year scan")
	}

	s := NewSerial(false)
	assert.Equal(t, constants.TotalTicks-1, s.LastTick())

	run := newTestRun()
	assert.NoError(t, s.Execute(context.Background(), run))
	assertContiguous(t, run.Store.Days(), constants.DaysPerYear-1)

	_, ok := run.Store.Get(constants.DaysPerYear - 1)
	assert.False(t, ok)
}

func TestThreadPool_Workers(t *testing.T) {
	assert.Equal(t, 1, NewThreadPool(0, false).Workers())
	assert.Equal(t, 0, NewThreadPool(0, false).Value())
	assert.Equal(t, 365, NewThreadPool(365, false).Workers())
	assert.True(t, NewThreadPool(1<<16, true).Workers() < 1<<16)
	assert.Equal(t, 1<<16, NewThreadPool(1<<16, true).Value())
}

func TestThreadPool_PopulatesEverySlot(t *testing.T) {
	for _, workers := range []int{1, 4, 365} {
		run := newTestRun()

		err := NewThreadPool(workers, false).Execute(context.Background(), run)
		assert.NoError(t, err)
		assertContiguous(t, run.Store.Days(), constants.DaysPerYear)

		// the counter is rewound after the run
		assert.Equal(t, 0, run.NextDay())
	}
}

func TestThreadPool_UnitFailurePropagates(t *testing.T) {
	run := newTestRun()

	// a pre-filled slot makes exactly one unit collide
	assert.NoError(t, run.Store.Set(100, aggregate.DailyStatistic{}))

	err := NewThreadPool(4, false).Execute(context.Background(), run)
	assert.True(t, errors.Is(err, sentinel.ErrUnitFailed))
	assert.Equal(t, constants.DaysPerYear, run.Store.Populated())
}

func TestDivideAndConquer_RejectsDepth(t *testing.T) {
	_, err := NewDivideAndConquer(-1, constants.DefaultMaxDepth)
	assert.True(t, errors.Is(err, sentinel.ErrInvalidParameter))
	assert.True(t, sentinel.IsUsage(err))

	_, err = NewDivideAndConquer(constants.DefaultMaxDepth+1, constants.DefaultMaxDepth)
	assert.True(t, errors.Is(err, sentinel.ErrInvalidDepth))
	assert.True(t, sentinel.IsUsage(err))

	d, err := NewDivideAndConquer(constants.DefaultMaxDepth, constants.DefaultMaxDepth)
	assert.NoError(t, err)
	assert.Equal(t, constants.DefaultMaxDepth, d.Value())
	assert.Equal(t, constants.DivideStrategy, d.Name())
}

func TestPivot(t *testing.T) {
	tests := []struct {
		name       string
		begin, end int
		want       int
	}{
		{name: "root", begin: 1, end: constants.TotalTicks, want: 15811200},
		{name: "on a boundary", begin: 0, end: 2 * constants.DaySize, want: constants.DaySize},
		{name: "single day", begin: 0, end: constants.DaySize, want: constants.DaySize},
		{name: "clamped", begin: 10, end: 20, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pivot(tt.begin, tt.end))
		})
	}
}

func TestDivideAndConquer_FullCoverage(t *testing.T) {
	depths := []int{0, 1, 3, 7}
	if testing.Short() {
		depths = []int{2}
	}

	for _, depth := range depths {
		d, err := NewDivideAndConquer(depth, constants.DefaultMaxDepth)
		assert.NoError(t, err)

		run := newTestRun()
		assert.NoError(t, d.Execute(context.Background(), run))
		assertContiguous(t, run.Store.Days(), constants.DaysPerYear)
		assert.Equal(t, 0, len(run.Gaps()))
	}
}

func TestDivideAndConquer_GuardLeavesTrailingGap(t *testing.T) {
	d, err := NewDivideAndConquer(8, constants.DefaultMaxDepth)
	assert.NoError(t, err)

	run := newTestRun()
	assert.NoError(t, d.Execute(context.Background(), run))
	assertContiguous(t, run.Store.Days(), constants.DaysPerYear-2)
	assert.Equal(t, []TickRange{{Begin: 31363200, End: constants.TotalTicks}}, run.Gaps())
}

func TestDivideAndConquer_Deterministic(t *testing.T) {
	d, err := NewDivideAndConquer(3, constants.DefaultMaxDepth)
	assert.NoError(t, err)

	first, second := newTestRun(), newTestRun()
	assert.NoError(t, d.Execute(context.Background(), first))
	assert.NoError(t, d.Execute(context.Background(), second))
	assert.Equal(t, first.Store.Days(), second.Store.Days())
}

func TestFork_JoinsAndReportsPanics(t *testing.T) {
	err := fork(
		func() error { return nil },
		func() error { panic("leaf") },
	)
	assert.True(t, errors.Is(err, sentinel.ErrUnitFailed))

	err = fork(func() error { return sentinel.ErrSlotWritten })
	assert.True(t, errors.Is(err, sentinel.ErrUnitFailed))

	assert.Nil(t, fork(func() error { return nil }, func() error { return nil }))
}

func TestRunContext_Gaps(t *testing.T) {
	run := newTestRun()
	run.RecordGap(TickRange{Begin: 1, End: 2})

	gaps := run.Gaps()
	gaps[0].Begin = 99

	assert.Equal(t, 1, run.Gaps()[0].Begin)
}

package dailystats

import (
	"context"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/pkg/aggregate"
)

// Serial is the single-goroutine baseline. It scans every tick of the
// horizon into one rolling day buffer and aggregates the buffer each time a
// day boundary is reached.
type Serial struct {
	inclusive bool
}

// NewSerial returns the serial strategy. With inclusive set, the scan runs
// up to and including constants.TotalTicks, so the final boundary closes the
// last day; without it the last day is never aggregated.
func NewSerial(inclusive bool) *Serial {
	return &Serial{inclusive: inclusive}
}

// Name implements Strategy.
func (*Serial) Name() string { return constants.SerialStrategy }

// Value implements Strategy.
func (*Serial) Value() int { return 0 }

// LastTick returns the final tick scanned.
func (s *Serial) LastTick() int {
	if s.inclusive {
		return constants.TotalTicks
	}

	return constants.TotalTicks - 1
}

// Execute implements Strategy.
func (s *Serial) Execute(_ context.Context, run *RunContext) error {
	gen := run.Seeder.Generator(0)
	buf := make([]float64, constants.DaySize)
	last := s.LastTick()
	day := 0

	for tick := 0; tick <= last; tick++ {
		// a boundary closes the day made of the previous DaySize ticks
		if tick > 0 && tick%constants.DaySize == 0 {
			stat, err := aggregate.Compute(day, buf)
			if err != nil {
				return err
			}

			err = run.Store.Set(day, stat)
			if err != nil {
				return err
			}

			day++
		}

		buf[tick%constants.DaySize] = gen.Next()
	}

	return nil
}

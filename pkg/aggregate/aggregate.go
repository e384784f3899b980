// Package aggregate computes the daily statistics (mean and median) of one
// day of sensor readings.
package aggregate

import (
	"slices"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/sentinel"
)

// DailyStatistic holds the aggregates of one simulated day.
type DailyStatistic struct {
	DayIndex int     `json:"day"    msgpack:"day"    codec:"day"`
	Mean     float64 `json:"mean"   msgpack:"mean"   codec:"mean"`
	Median   float64 `json:"median" msgpack:"median" codec:"median"`
}

// Mean returns the arithmetic average of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// Median returns the median of values, 0 for an empty slice. With an even
// count it averages the two central elements.
//
// Median sorts values in place.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	slices.Sort(values)

	if n%2 == 0 {
		return (values[n/2-1] + values[n/2]) / 2
	}

	return values[n/2]
}

// Compute returns the statistics of one full day. buf must hold exactly
// constants.DaySize readings; anything else is an internal invariant
// violation reported as sentinel.ErrBufferSize. buf is sorted in place.
func Compute(day int, buf []float64) (DailyStatistic, error) {
	if len(buf) != constants.DaySize {
		return DailyStatistic{}, ewrap.Wrapf(sentinel.ErrBufferSize, "day %d holds %d readings, want %d", day, len(buf), constants.DaySize)
	}

	// the mean is taken before Median reorders the buffer
	mean := Mean(buf)

	return DailyStatistic{
		DayIndex: day,
		Mean:     mean,
		Median:   Median(buf),
	}, nil
}

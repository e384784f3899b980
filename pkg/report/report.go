// Package report renders and exports the outcome of a benchmark.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/pkg/aggregate"
	"github.com/hyp3rd/dailystats/pkg/sched"
	"github.com/hyp3rd/dailystats/pkg/stats"
)

// Gap is a tick range a run left uncovered.
type Gap struct {
	Begin int `json:"begin" msgpack:"begin" codec:"begin"`
	End   int `json:"end"   msgpack:"end"   codec:"end"`
}

// Report is the outcome of the latest completed run of a benchmark plus the
// timing of every run so far.
type Report struct {
	ID        string                     `json:"id"                  msgpack:"id"        codec:"id"`
	Strategy  string                     `json:"strategy"            msgpack:"strategy"  codec:"strategy"`
	Value     int                        `json:"value"               msgpack:"value"     codec:"value"`
	Runs      int                        `json:"runs"                msgpack:"runs"      codec:"runs"`
	Run       int                        `json:"run"                 msgpack:"run"       codec:"run"`
	Seed      uint64                     `json:"seed"                msgpack:"seed"      codec:"seed"`
	RealTime  *sched.Config              `json:"realtime,omitempty"  msgpack:"realtime"  codec:"realtime,omitempty"`
	Timing    stats.Stats                `json:"timing"              msgpack:"timing"    codec:"timing"`
	Populated int                        `json:"populated"           msgpack:"populated" codec:"populated"`
	Days      []aggregate.DailyStatistic `json:"days"                msgpack:"days"      codec:"days"`
	Gaps      []Gap                      `json:"gaps,omitempty"      msgpack:"gaps"      codec:"gaps,omitempty"`
	Generated time.Time                  `json:"generated"           msgpack:"generated" codec:"generated"`
}

// Complete reports whether every day of the year was populated.
func (r *Report) Complete() bool {
	return r.Populated == constants.DaysPerYear
}

// Write renders rep as text. With showData every populated day is printed
// as `<day> of 365 - Average: <mean> - Median: <median>`. A coverage line
// follows when days are missing, and a summary line always ends the output.
func Write(w io.Writer, rep *Report, showData bool) error {
	if showData {
		for _, d := range rep.Days {
			_, err := fmt.Fprintf(w, "%d of %d - Average: %v - Median: %v\n", d.DayIndex, constants.DaysPerYear, d.Mean, d.Median)
			if err != nil {
				return err
			}
		}
	}

	if rep.Run > 0 && !rep.Complete() {
		_, err := fmt.Fprintf(w, "Coverage: %d of %d days populated, %d range(s) skipped\n", rep.Populated, constants.DaysPerYear, len(rep.Gaps))
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Last execution time: %.9f s - Minimum execution time: %.9f s - Executions: %d\n",
		rep.Timing.Last.Seconds(), rep.Timing.Min.Seconds(), rep.Timing.Runs)

	return err
}

// Package attrs defines the telemetry attribute keys shared by the strategy
// middlewares, so metrics, traces and logs use the same names.
package attrs

const (
	// AttrStrategy is the name of the strategy being executed.
	AttrStrategy = "strategy"
	// AttrParameter is the strategy value: worker count or fan-out depth.
	AttrParameter = "strategy.value"
	// AttrRun is the 1-based invocation number within a benchmark.
	AttrRun = "run"
	// AttrPopulated is the number of result store slots written by a run.
	AttrPopulated = "days.populated"
	// AttrGaps is the number of tick ranges left uncovered by a run.
	AttrGaps = "gaps.count"
	// AttrElapsedMS is the wall-clock duration of a run in milliseconds.
	AttrElapsedMS = "elapsed.ms"
)

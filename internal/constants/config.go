// Package constants defines the simulation horizon, reading bounds and
// default configuration values for the dailystats benchmark.
package constants

const (
	// DaySize is the number of ticks (simulated seconds) in one day.
	DaySize = 60 * 60 * 24
	// DaysPerYear is the number of days in the simulated horizon and the
	// number of slots held by a result store.
	DaysPerYear = 365
	// TotalTicks is the length of the simulated horizon in ticks.
	TotalTicks = DaySize * DaysPerYear

	// ReadingMin is the inclusive lower bound of a synthetic reading.
	ReadingMin = 50.0
	// ReadingMax is the exclusive upper bound of a synthetic reading.
	ReadingMax = 100.0

	// SerialInclusiveHorizon keeps the serial scan running up to and
	// including TotalTicks, so the final day boundary is observed and the
	// serial strategy yields DaysPerYear entries. Turning it off stops at
	// TotalTicks-1 and drops the last day.
	SerialInclusiveHorizon = true

	// MinRealTimePriority is the fallback lower bound for a round-robin
	// real-time priority when the platform cannot be queried.
	MinRealTimePriority = 1
	// MaxRealTimePriority is the fallback upper bound for a round-robin
	// real-time priority when the platform cannot be queried.
	MaxRealTimePriority = 99

	// DefaultRuns is the default number of strategy invocations.
	DefaultRuns = 1
	// DefaultMaxDepth bounds the divide-and-conquer fan-out depth (2^12 leaves).
	DefaultMaxDepth = 12
)

// Strategy names understood by the strategy registry.
const (
	// SerialStrategy is the single-goroutine baseline.
	SerialStrategy = "serial"
	// PoolStrategy is the fixed-size worker pool strategy.
	PoolStrategy = "pool"
	// DivideStrategy is the recursive fork-join strategy.
	DivideStrategy = "divide"
)

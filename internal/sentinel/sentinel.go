// Package sentinel provides the error definitions shared by the dailystats
// packages. Errors fall in three classes:
//   - usage errors (bad arguments, out of range values, refused privilege),
//     rejected before any strategy runs;
//   - internal invariant errors (a day buffer of the wrong size, a slot
//     index outside the store), which abort a run;
//   - unit failures, raised when a pooled or forked unit of work fails.
//
// All errors are created using the ewrap package so callers can attach
// context with ewrap.Wrap and still classify with errors.Is.
package sentinel

import (
	"errors"

	"github.com/hyp3rd/ewrap"
)

var (
	// ErrInvalidRuns is returned when the repeat count is lower than one.
	ErrInvalidRuns = ewrap.New("number of executions must be at least 1")

	// ErrInvalidParameter is returned when a strategy value (workers or depth) is negative.
	ErrInvalidParameter = ewrap.New("strategy value cannot be negative")

	// ErrInvalidDepth is returned when a divide-and-conquer depth exceeds the configured maximum.
	ErrInvalidDepth = ewrap.New("divide-and-conquer depth exceeds maximum")

	// ErrInvalidPriority is returned when a real-time priority is outside the platform range.
	ErrInvalidPriority = ewrap.New("real-time priority out of range")

	// ErrPrivilege is returned when the operating system refuses the scheduling change.
	ErrPrivilege = ewrap.New("real-time scheduling refused")

	// ErrSchedulingUnsupported is returned on platforms without real-time round-robin scheduling.
	ErrSchedulingUnsupported = ewrap.New("real-time scheduling unsupported on this platform")

	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = ewrap.New("unknown strategy")

	// ErrBufferSize is returned when a day buffer does not hold exactly one day of readings.
	ErrBufferSize = ewrap.New("day buffer size mismatch")

	// ErrSlotOutOfRange is returned when a day index falls outside the result store.
	ErrSlotOutOfRange = ewrap.New("day index out of range")

	// ErrSlotWritten is returned when a result store slot is written twice in the same run.
	ErrSlotWritten = ewrap.New("day slot already written")

	// ErrUnitFailed is returned when one or more units of work failed during a run.
	ErrUnitFailed = ewrap.New("unit of work failed")

	// ErrParamCannotBeEmpty is returned when a parameter cannot be empty.
	ErrParamCannotBeEmpty = ewrap.New("param cannot be empty")

	// ErrSerializerNotFound is returned when a serializer is not found.
	ErrSerializerNotFound = ewrap.New("serializer not found")

	// ErrNilClient is returned when a nil client is passed to the report publisher.
	ErrNilClient = ewrap.New("nil client")

	// ErrMgmtHTTPShutdownTimeout is returned when the management HTTP server fails to shutdown before context deadline.
	ErrMgmtHTTPShutdownTimeout = ewrap.New("management http shutdown timeout")
)

// IsUsage reports whether err is an invalid-invocation error: something the
// caller asked for that was rejected before any work started.
func IsUsage(err error) bool {
	for _, target := range []error{
		ErrInvalidRuns,
		ErrInvalidParameter,
		ErrInvalidDepth,
		ErrInvalidPriority,
		ErrPrivilege,
		ErrSchedulingUnsupported,
		ErrUnknownStrategy,
		ErrSerializerNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// IsInvariant reports whether err signals a broken internal invariant.
func IsInvariant(err error) bool {
	return errors.Is(err, ErrBufferSize) || errors.Is(err, ErrSlotOutOfRange) || errors.Is(err, ErrSlotWritten)
}

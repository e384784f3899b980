//go:build linux

package sched

import (
	"errors"
	"os"
	"strconv"

	"github.com/hyp3rd/ewrap"
	"golang.org/x/sys/unix"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/sentinel"
)

// schedRR is SCHED_RR from <sched.h>.
const schedRR = 2

type system struct{}

// NewController returns the controller of the running platform.
func NewController() Controller { //nolint:ireturn
	return system{}
}

// Bounds queries sched_get_priority_min/max, falling back to 1..99.
func (system) Bounds(Policy) (int, int) {
	lo, _, errLo := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MIN, schedRR, 0, 0)
	hi, _, errHi := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MAX, schedRR, 0, 0)

	if errLo != 0 || errHi != 0 {
		return constants.MinRealTimePriority, constants.MaxRealTimePriority
	}

	return int(lo), int(hi)
}

// RequestElevation applies SCHED_RR to every thread listed in /proc/self/task.
// Linux scheduling attributes are per thread; the Go runtime already runs
// several, and the ones it creates later are cloned from elevated threads.
func (s system) RequestElevation(cfg Config) error {
	err := Validate(s, cfg)
	if err != nil {
		return err
	}

	attr := unix.SchedAttr{
		Policy:   schedRR,
		Priority: uint32(cfg.Priority), //nolint:gosec
	}

	for _, tid := range threadIDs() {
		err = unix.SchedSetAttr(tid, &attr, 0)

		switch {
		case err == nil:
		case errors.Is(err, unix.ESRCH):
			// the thread exited after being listed
		case errors.Is(err, unix.EPERM):
			return ewrap.Wrapf(sentinel.ErrPrivilege, "thread %d: %v", tid, err)
		default:
			return ewrap.Wrapf(sentinel.ErrPrivilege, "sched_setattr thread %d: %v", tid, err)
		}
	}

	return nil
}

func threadIDs() []int {
	entries, err := os.ReadDir("/proc/self/task")
	if err != nil {
		return []int{0}
	}

	tids := make([]int, 0, len(entries))

	for _, e := range entries {
		tid, err := strconv.Atoi(e.Name())
		if err == nil {
			tids = append(tids, tid)
		}
	}

	if len(tids) == 0 {
		return []int{0}
	}

	return tids
}

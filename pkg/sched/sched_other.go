//go:build !linux

package sched

import (
	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/sentinel"
)

type system struct{}

// NewController returns the controller of the running platform.
func NewController() Controller { //nolint:ireturn
	return system{}
}

// Bounds returns the POSIX range used by most real-time schedulers.
func (system) Bounds(Policy) (int, int) {
	return constants.MinRealTimePriority, constants.MaxRealTimePriority
}

// RequestElevation always fails: real-time round-robin is not wired on this platform.
func (s system) RequestElevation(cfg Config) error {
	err := Validate(s, cfg)
	if err != nil {
		return err
	}

	return sentinel.ErrSchedulingUnsupported
}

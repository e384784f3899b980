// Package sched elevates the benchmark process to real-time round-robin
// scheduling before any strategy runs. Elevation is a capability: platforms
// without it return sentinel.ErrSchedulingUnsupported, and a refusal from the
// operating system is reported as sentinel.ErrPrivilege.
package sched

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/dailystats/internal/sentinel"
)

// Policy is a scheduling class.
type Policy int

const (
	// RoundRobin is the real-time round-robin class (SCHED_RR).
	RoundRobin Policy = iota
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case RoundRobin:
		return "round-robin-realtime"
	default:
		return "unknown"
	}
}

// Config describes the requested scheduling class.
type Config struct {
	Policy   Policy `json:"policy"`
	Priority int    `json:"priority"`
}

// Controller changes the scheduling class of the running process.
type Controller interface {
	// Bounds returns the valid priority range of policy.
	Bounds(policy Policy) (lo, hi int)
	// RequestElevation switches every thread of the process to cfg. Threads
	// started afterwards inherit the class from the thread that creates them.
	RequestElevation(cfg Config) error
}

// Validate checks cfg against the bounds reported by ctrl.
func Validate(ctrl Controller, cfg Config) error {
	if cfg.Policy != RoundRobin {
		return ewrap.Wrapf(sentinel.ErrSchedulingUnsupported, "policy %s", cfg.Policy)
	}

	lo, hi := ctrl.Bounds(cfg.Policy)
	if cfg.Priority < lo || cfg.Priority > hi {
		return ewrap.Wrapf(sentinel.ErrInvalidPriority, "priority %d not in [%d, %d]", cfg.Priority, lo, hi)
	}

	return nil
}

// Elevate validates cfg and then asks ctrl to apply it.
func Elevate(ctrl Controller, cfg Config) error {
	err := Validate(ctrl, cfg)
	if err != nil {
		return err
	}

	return ctrl.RequestElevation(cfg)
}

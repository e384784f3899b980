package dailystats

import (
	"context"
)

// Strategy computes the daily statistics of one simulated year into the
// store of a RunContext. Implementations block until every unit of work
// they spawned has finished.
type Strategy interface {
	// Name returns the registered strategy name.
	Name() string
	// Value returns the strategy parameter (workers or depth, 0 for serial).
	Value() int
	// Execute runs the strategy once.
	Execute(ctx context.Context, run *RunContext) error
}

// Middleware describes a strategy middleware.
type Middleware func(Strategy) Strategy

// ApplyMiddleware applies middlewares to a strategy.
func ApplyMiddleware(strategy Strategy, mw ...Middleware) Strategy {
	// Apply each middleware in the chain
	for _, m := range mw {
		strategy = m(strategy)
	}
	// Return the decorated strategy
	return strategy
}

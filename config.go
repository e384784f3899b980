package dailystats

import (
	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/pkg/reading"
	"github.com/hyp3rd/dailystats/pkg/sched"
)

// Config wraps all the options used to set up a `Bench` and its strategy.
type Config struct {
	// Strategy is the registered name of the strategy to run.
	Strategy string
	// Value is the strategy parameter: worker count for the pool strategy,
	// fan-out depth for divide-and-conquer, ignored by serial.
	Value int
	// Runs is the number of times the strategy is invoked.
	Runs int
	// Seeder hands out the reading generators. Nil means time-based seeding.
	Seeder *reading.Seeder
	// RealTime, when set, requests real-time scheduling before the first run.
	RealTime *sched.Config
	// Scheduler applies RealTime. Nil means the platform controller.
	Scheduler sched.Controller
	// InclusiveHorizon makes the serial scan include the final tick.
	InclusiveHorizon bool
	// HardwareCap caps the pool size at runtime.NumCPU().
	HardwareCap bool
	// MaxDepth is the largest accepted divide-and-conquer depth.
	MaxDepth int
	// Middleware decorates the strategy, first to last.
	Middleware []Middleware
	// ManagementAddr, when set, serves the management HTTP endpoints.
	ManagementAddr string
	// ManagementOptions configure the management HTTP server.
	ManagementOptions []ManagementHTTPOption
}

// Option is a function type that can be used to configure the `Config` struct.
type Option func(*Config)

// NewConfig returns a new `Config` for the named strategy with default values:
//   - `Runs` is set to `constants.DefaultRuns`
//   - `InclusiveHorizon` is set to `constants.SerialInclusiveHorizon`
//   - `MaxDepth` is set to `constants.DefaultMaxDepth`
//   - seeding is time based and no real-time scheduling is requested
//
// Each of the above can be overridden by passing options.
func NewConfig(strategy string, opts ...Option) *Config {
	cfg := &Config{
		Strategy:         strategy,
		Runs:             constants.DefaultRuns,
		InclusiveHorizon: constants.SerialInclusiveHorizon,
		MaxDepth:         constants.DefaultMaxDepth,
	}

	ApplyOptions(cfg, opts...)

	return cfg
}

// ApplyOptions applies the given options to the given config.
func ApplyOptions(cfg *Config, opts ...Option) {
	for _, opt := range opts {
		opt(cfg)
	}
}

// WithValue sets the strategy parameter (workers or depth).
func WithValue(value int) Option {
	return func(cfg *Config) {
		cfg.Value = value
	}
}

// WithRuns sets how many times the strategy is invoked.
func WithRuns(runs int) Option {
	return func(cfg *Config) {
		cfg.Runs = runs
	}
}

// WithSeed fixes the base seed of every reading generator, for deterministic runs.
func WithSeed(seed uint64) Option {
	return func(cfg *Config) {
		cfg.Seeder = reading.NewSeeder(seed)
	}
}

// WithTimeSeed seeds the reading generators from the wall clock.
func WithTimeSeed() Option {
	return func(cfg *Config) {
		cfg.Seeder = reading.NewTimeSeeder()
	}
}

// WithRealTimePriority requests round-robin real-time scheduling at priority.
func WithRealTimePriority(priority int) Option {
	return func(cfg *Config) {
		cfg.RealTime = &sched.Config{Policy: sched.RoundRobin, Priority: priority}
	}
}

// WithScheduler sets the controller used to apply real-time scheduling.
func WithScheduler(ctrl sched.Controller) Option {
	return func(cfg *Config) {
		cfg.Scheduler = ctrl
	}
}

// WithInclusiveHorizon controls whether the serial scan includes the final tick.
// Turning it off yields one day less.
func WithInclusiveHorizon(inclusive bool) Option {
	return func(cfg *Config) {
		cfg.InclusiveHorizon = inclusive
	}
}

// WithHardwareCap caps the pool size at the number of logical CPUs.
func WithHardwareCap() Option {
	return func(cfg *Config) {
		cfg.HardwareCap = true
	}
}

// WithMaxDepth sets the largest accepted divide-and-conquer depth.
func WithMaxDepth(depth int) Option {
	return func(cfg *Config) {
		cfg.MaxDepth = depth
	}
}

// WithMiddleware appends strategy middlewares.
func WithMiddleware(mw ...Middleware) Option {
	return func(cfg *Config) {
		cfg.Middleware = append(cfg.Middleware, mw...)
	}
}

// WithManagementHTTP serves the management endpoints on addr while the bench runs.
func WithManagementHTTP(addr string, opts ...ManagementHTTPOption) Option {
	return func(cfg *Config) {
		cfg.ManagementAddr = addr
		cfg.ManagementOptions = append(cfg.ManagementOptions, opts...)
	}
}

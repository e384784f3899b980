// Package dailystats benchmarks strategies that compute the daily mean and
// median of one synthetic year of per-second sensor readings.
//
// A Bench runs one strategy a fixed number of times. Every invocation gets
// its own RunContext (result store, day counter, generators); the Timer is
// shared so the minimum duration survives across invocations. Optional
// real-time scheduling is applied once, before the first invocation.
package dailystats

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/dailystats/internal/sentinel"
	"github.com/hyp3rd/dailystats/pkg/reading"
	"github.com/hyp3rd/dailystats/pkg/report"
	"github.com/hyp3rd/dailystats/pkg/sched"
	"github.com/hyp3rd/dailystats/pkg/stats"
)

// Bench runs a strategy repeatedly and times it.
type Bench struct {
	id        uuid.UUID
	cfg       *Config
	strategy  Strategy
	seeder    *reading.Seeder
	scheduler sched.Controller
	timer     *stats.Timer

	mgmtHTTP *ManagementHTTPServer

	mu     sync.RWMutex // protects latest
	latest report.Report
}

// New validates cfg and builds a bench around the strategy it names. No
// goroutine is started and no scheduling change is made before Run.
func New(registry *StrategyRegistry, cfg *Config) (*Bench, error) {
	if cfg.Runs < 1 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidRuns, "runs %d", cfg.Runs)
	}

	if registry == nil {
		registry = GetDefaultRegistry()
	}

	strategy, err := registry.Create(cfg)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, ewrap.Wrap(err, "bench id")
	}

	bench := &Bench{
		id:        id,
		cfg:       cfg,
		strategy:  ApplyMiddleware(strategy, cfg.Middleware...),
		seeder:    cfg.Seeder,
		scheduler: cfg.Scheduler,
		timer:     stats.NewTimer(),
	}

	if bench.seeder == nil {
		bench.seeder = reading.NewTimeSeeder()
	}

	if bench.scheduler == nil {
		bench.scheduler = sched.NewController()
	}

	if cfg.RealTime != nil {
		err = sched.Validate(bench.scheduler, *cfg.RealTime)
		if err != nil {
			return nil, err
		}
	}

	if cfg.ManagementAddr != "" {
		bench.mgmtHTTP = NewManagementHTTPServer(cfg.ManagementAddr, cfg.ManagementOptions...)
	}

	bench.latest = bench.snapshot(nil)

	return bench, nil
}

// ID identifies the bench in exported and published reports.
func (b *Bench) ID() string { return b.id.String() }

// Strategy returns the (decorated) strategy.
func (b *Bench) Strategy() Strategy { return b.strategy }

// Seed returns the base seed of the reading generators.
func (b *Bench) Seed() uint64 { return b.seeder.Base() }

// Timer returns the run timer.
func (b *Bench) Timer() *stats.Timer { return b.timer }

// Run elevates scheduling if requested, then invokes the strategy cfg.Runs
// times. A failed elevation aborts before any reading is generated. A failed
// invocation aborts the remaining ones; its partial store is not reported.
func (b *Bench) Run(ctx context.Context) (*report.Report, error) {
	if b.cfg.RealTime != nil {
		err := sched.Elevate(b.scheduler, *b.cfg.RealTime)
		if err != nil {
			return nil, err
		}
	}

	if b.mgmtHTTP != nil {
		err := b.mgmtHTTP.Start(ctx, b)
		if err != nil {
			return nil, err
		}
	}

	for i := 1; i <= b.cfg.Runs; i++ {
		run := NewRunContext(i, b.seeder.Derive(uint64(i))) //nolint:gosec

		_, err := b.timer.Measure(func() error {
			return b.strategy.Execute(ctx, run)
		})
		if err != nil {
			return nil, ewrap.Wrapf(err, "run %d of %d", i, b.cfg.Runs)
		}

		b.mu.Lock()
		b.latest = b.snapshot(run)
		b.mu.Unlock()
	}

	rep := b.Snapshot()

	return &rep, nil
}

// Snapshot returns the report of the latest completed run. It is safe to
// call while Run is in progress.
func (b *Bench) Snapshot() report.Report {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rep := b.latest
	rep.Timing = b.timer.GetStats()

	return rep
}

// ManagementHTTPAddress returns the bound management address, empty when the
// server is not running.
func (b *Bench) ManagementHTTPAddress() string {
	if b.mgmtHTTP == nil {
		return ""
	}

	return b.mgmtHTTP.Address()
}

// Stop shuts down the management HTTP server, if any.
func (b *Bench) Stop(ctx context.Context) error {
	if b.mgmtHTTP == nil {
		return nil
	}

	return b.mgmtHTTP.Shutdown(ctx)
}

func (b *Bench) snapshot(run *RunContext) report.Report {
	rep := report.Report{
		ID:        b.id.String(),
		Strategy:  b.strategy.Name(),
		Value:     b.strategy.Value(),
		Runs:      b.cfg.Runs,
		Seed:      b.seeder.Base(),
		RealTime:  b.cfg.RealTime,
		Timing:    b.timer.GetStats(),
		Generated: time.Now().UTC(),
	}

	if run == nil {
		return rep
	}

	rep.Run = run.Run
	rep.Days = run.Store.Days()
	rep.Populated = len(rep.Days)

	for _, g := range run.Gaps() {
		rep.Gaps = append(rep.Gaps, report.Gap{Begin: g.Begin, End: g.End})
	}

	return rep
}

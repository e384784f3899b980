package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hyp3rd/dailystats"
	"github.com/hyp3rd/dailystats/internal/telemetry/attrs"
)

// OTelMetricsMiddleware emits OpenTelemetry metrics for every run.
type OTelMetricsMiddleware struct {
	next  dailystats.Strategy
	meter metric.Meter

	// instruments
	runs      metric.Int64Counter
	failures  metric.Int64Counter
	durations metric.Float64Histogram
	populated metric.Int64Histogram
}

// NewOTelMetricsMiddleware constructs a metrics middleware using the provided meter.
func NewOTelMetricsMiddleware(next dailystats.Strategy, meter metric.Meter) (dailystats.Strategy, error) {
	runs, err := meter.Int64Counter("dailystats.runs")
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	failures, err := meter.Int64Counter("dailystats.failures")
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	durations, err := meter.Float64Histogram("dailystats.duration.ms", metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("create histogram: %w", err)
	}

	populated, err := meter.Int64Histogram("dailystats.days.populated")
	if err != nil {
		return nil, fmt.Errorf("create histogram: %w", err)
	}

	return &OTelMetricsMiddleware{
		next:      next,
		meter:     meter,
		runs:      runs,
		failures:  failures,
		durations: durations,
		populated: populated,
	}, nil
}

// Metrics returns the middleware constructor. Instrument creation errors
// leave the strategy undecorated.
func Metrics(meter metric.Meter) dailystats.Middleware {
	return func(next dailystats.Strategy) dailystats.Strategy {
		mw, err := NewOTelMetricsMiddleware(next, meter)
		if err != nil {
			return next
		}

		return mw
	}
}

// Name implements Strategy.
func (mw *OTelMetricsMiddleware) Name() string { return mw.next.Name() }

// Value implements Strategy.
func (mw *OTelMetricsMiddleware) Value() int { return mw.next.Value() }

// Execute implements Strategy with metrics.
func (mw *OTelMetricsMiddleware) Execute(ctx context.Context, run *dailystats.RunContext) error {
	start := time.Now()
	err := mw.next.Execute(ctx, run)

	opts := metric.WithAttributes(
		attribute.String(attrs.AttrStrategy, mw.next.Name()),
		attribute.Int(attrs.AttrParameter, mw.next.Value()),
	)

	mw.runs.Add(ctx, 1, opts)
	mw.durations.Record(ctx, float64(time.Since(start).Microseconds())/1000, opts)

	if err != nil {
		mw.failures.Add(ctx, 1, opts)

		return err
	}

	mw.populated.Record(ctx, int64(run.Store.Populated()), opts)

	return nil
}

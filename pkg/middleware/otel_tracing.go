package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyp3rd/dailystats"
	"github.com/hyp3rd/dailystats/internal/telemetry/attrs"
)

// OTelTracingMiddleware wraps every run in an OpenTelemetry span.
type OTelTracingMiddleware struct {
	next   dailystats.Strategy
	tracer trace.Tracer
	// static attributes applied to all spans
	commonAttrs []attribute.KeyValue
}

// OTelTracingOption allows configuring the tracing middleware.
type OTelTracingOption func(*OTelTracingMiddleware)

// WithCommonAttributes sets attributes applied to all spans.
func WithCommonAttributes(attributes ...attribute.KeyValue) OTelTracingOption {
	return func(m *OTelTracingMiddleware) { m.commonAttrs = append(m.commonAttrs, attributes...) }
}

// NewOTelTracingMiddleware creates a tracing middleware.
func NewOTelTracingMiddleware(next dailystats.Strategy, tracer trace.Tracer, opts ...OTelTracingOption) dailystats.Strategy {
	mw := &OTelTracingMiddleware{next: next, tracer: tracer}
	for _, o := range opts {
		o(mw)
	}

	return mw
}

// Tracing returns the middleware constructor.
func Tracing(tracer trace.Tracer, opts ...OTelTracingOption) dailystats.Middleware {
	return func(next dailystats.Strategy) dailystats.Strategy {
		return NewOTelTracingMiddleware(next, tracer, opts...)
	}
}

// Name implements Strategy.
func (mw *OTelTracingMiddleware) Name() string { return mw.next.Name() }

// Value implements Strategy.
func (mw *OTelTracingMiddleware) Value() int { return mw.next.Value() }

// Execute implements Strategy with tracing.
func (mw *OTelTracingMiddleware) Execute(ctx context.Context, run *dailystats.RunContext) error {
	ctx, span := mw.startSpan(ctx, "dailystats.Execute",
		attribute.String(attrs.AttrStrategy, mw.next.Name()),
		attribute.Int(attrs.AttrParameter, mw.next.Value()),
		attribute.Int(attrs.AttrRun, run.Run))
	defer span.End()

	start := time.Now()
	err := mw.next.Execute(ctx, run)

	span.SetAttributes(attribute.Float64(attrs.AttrElapsedMS, float64(time.Since(start).Microseconds())/1000))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	span.SetAttributes(
		attribute.Int(attrs.AttrPopulated, run.Store.Populated()),
		attribute.Int(attrs.AttrGaps, len(run.Gaps())),
	)

	return nil
}

func (mw *OTelTracingMiddleware) startSpan(ctx context.Context, name string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := mw.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(mw.commonAttrs) > 0 {
		span.SetAttributes(mw.commonAttrs...)
	}

	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}

	return ctx, span
}

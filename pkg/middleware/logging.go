// Package middleware provides strategy decorators for logging, metrics and
// tracing. Each middleware implements dailystats.Strategy and forwards to
// the next strategy in the chain.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/hyp3rd/dailystats"
	"github.com/hyp3rd/dailystats/internal/telemetry/attrs"
)

// LoggingMiddleware logs the start, the duration and the outcome of every run.
type LoggingMiddleware struct {
	next   dailystats.Strategy
	logger *slog.Logger
}

// NewLoggingMiddleware returns a new LoggingMiddleware. A nil logger uses slog.Default().
func NewLoggingMiddleware(next dailystats.Strategy, logger *slog.Logger) dailystats.Strategy {
	if logger == nil {
		logger = slog.Default()
	}

	return &LoggingMiddleware{next: next, logger: logger}
}

// Logging returns the middleware constructor, for dailystats.WithMiddleware.
func Logging(logger *slog.Logger) dailystats.Middleware {
	return func(next dailystats.Strategy) dailystats.Strategy {
		return NewLoggingMiddleware(next, logger)
	}
}

// Name implements Strategy.
func (mw *LoggingMiddleware) Name() string { return mw.next.Name() }

// Value implements Strategy.
func (mw *LoggingMiddleware) Value() int { return mw.next.Value() }

// Execute logs around the next strategy.
func (mw *LoggingMiddleware) Execute(ctx context.Context, run *dailystats.RunContext) error {
	logger := mw.logger.With(
		slog.String(attrs.AttrStrategy, mw.next.Name()),
		slog.Int(attrs.AttrParameter, mw.next.Value()),
		slog.Int(attrs.AttrRun, run.Run),
	)

	logger.DebugContext(ctx, "strategy started")

	begin := time.Now()
	err := mw.next.Execute(ctx, run)
	elapsed := time.Since(begin)

	if err != nil {
		logger.ErrorContext(ctx, "strategy failed", slog.Duration("elapsed", elapsed), slog.Any("error", err))

		return err
	}

	logger.InfoContext(ctx, "strategy finished",
		slog.Duration("elapsed", elapsed),
		slog.Int(attrs.AttrPopulated, run.Store.Populated()),
		slog.Int(attrs.AttrGaps, len(run.Gaps())),
	)

	return nil
}

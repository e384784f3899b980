// Command dailystats benchmarks the serial, worker-pool and divide-and-conquer
// strategies over one synthetic year of per-second readings.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/lmittmann/tint"
	"go.opentelemetry.io/otel"

	"github.com/hyp3rd/dailystats"
	"github.com/hyp3rd/dailystats/internal/libs/serializer"
	"github.com/hyp3rd/dailystats/internal/sentinel"
	"github.com/hyp3rd/dailystats/pkg/middleware"
	"github.com/hyp3rd/dailystats/pkg/report"
)

const (
	progName = "dailystats"

	exitOK       = 0
	exitInternal = 1
	exitUsage    = 2
	exitHelp     = 3

	instrumentationName = "github.com/hyp3rd/dailystats"
	stopTimeout         = 5 * time.Second
)

//go:embed manual.hlp
var manual []byte

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fail(stderr, ewrap.Newf("panic: %v", r))

			code = exitInternal
		}
	}()

	opts, err := parseFlags(args)
	if err != nil {
		return fail(stderr, err)
	}

	if opts.help {
		_, _ = stdout.Write(manual)

		return exitHelp
	}

	if !strings.EqualFold(opts.format, report.TextFormat) {
		_, err = serializer.New(opts.format)
		if err != nil {
			return fail(stderr, err)
		}
	}

	logger := newLogger(stderr, opts.verbose)

	bench, err := dailystats.New(nil, dailystats.NewConfig(opts.strategy, configOptions(opts, logger)...))
	if err != nil {
		return fail(stderr, err)
	}

	defer func() {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
		defer cancel()

		err := bench.Stop(stopCtx)
		if err != nil {
			logger.Warn("management server shutdown", slog.Any("error", err))
		}
	}()

	logger.Debug("bench ready",
		slog.String("strategy", bench.Strategy().Name()),
		slog.Int("value", bench.Strategy().Value()),
		slog.Uint64("seed", bench.Seed()),
	)

	rep, err := bench.Run(ctx)
	if err != nil {
		return fail(stderr, err)
	}

	err = emit(rep, opts, stdout)
	if err != nil {
		return fail(stderr, err)
	}

	if opts.redisAddr != "" {
		err = publish(ctx, rep, opts.redisAddr)
		if err != nil {
			return fail(stderr, err)
		}

		logger.Info("report published", slog.String("redis", opts.redisAddr))
	}

	return exitOK
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.TimeOnly}))
}

func configOptions(opts *options, logger *slog.Logger) []dailystats.Option {
	cfg := []dailystats.Option{
		dailystats.WithValue(opts.value),
		dailystats.WithRuns(opts.runs),
		dailystats.WithMiddleware(
			middleware.Logging(logger),
			middleware.Metrics(otel.GetMeterProvider().Meter(instrumentationName)),
			middleware.Tracing(otel.GetTracerProvider().Tracer(instrumentationName)),
		),
	}

	if opts.seedSet {
		cfg = append(cfg, dailystats.WithSeed(opts.seed))
	}

	if opts.realTime {
		cfg = append(cfg, dailystats.WithRealTimePriority(opts.priority))
	}

	if opts.hardwareCap {
		cfg = append(cfg, dailystats.WithHardwareCap())
	}

	if opts.mgmtAddr != "" {
		cfg = append(cfg, dailystats.WithManagementHTTP(opts.mgmtAddr))
	}

	return cfg
}

// emit writes the report to the output file, or to stdout.
func emit(rep *report.Report, opts *options, stdout io.Writer) error {
	data, err := report.Export(rep, opts.format, opts.showData)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = stdout.Write(data)

		return err
	}

	err = os.WriteFile(opts.output, data, 0o600)
	if err != nil {
		return ewrap.Wrap(err, "write report")
	}

	return nil
}

func publish(ctx context.Context, rep *report.Report, addr string) error {
	client, err := report.NewRedisClient(addr)
	if err != nil {
		return err
	}

	defer func() { _ = client.Close() }()

	publisher, err := report.NewRedisPublisher(client)
	if err != nil {
		return err
	}

	return publisher.Publish(ctx, rep)
}

// fail prints err in the `dailystats > CLASS > message` form and returns
// the matching exit code.
func fail(stderr io.Writer, err error) int {
	class, code := "EXCEPTION", exitInternal

	switch {
	case sentinel.IsUsage(err):
		class, code = "INVALID INVOCATION", exitUsage
	case sentinel.IsInvariant(err):
		class = "INVARIANT VIOLATION"
	}

	_, _ = fmt.Fprintf(stderr, "%s > %s > %v\n", progName, class, err)

	return code
}

package dailystats

import (
	"context"
	"net"
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v3"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/dailystats/internal/sentinel"
	"github.com/hyp3rd/dailystats/pkg/report"
	"github.com/hyp3rd/dailystats/pkg/stats"
)

// ManagementHTTPOption configures the management HTTP server.
type ManagementHTTPOption func(*ManagementHTTPServer)

// ManagementHTTPServer exposes the latest report of a running bench over HTTP.
type ManagementHTTPServer struct {
	addr         string
	app          *fiber.App
	readTimeout  time.Duration
	writeTimeout time.Duration
	authFunc     func(fiber.Ctx) error
	ln           net.Listener
	started      bool
}

// WithMgmtAuth sets an auth function (return error to block).
func WithMgmtAuth(fn func(fiber.Ctx) error) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.authFunc = fn }
}

// WithMgmtReadTimeout sets read timeout.
func WithMgmtReadTimeout(d time.Duration) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.readTimeout = d }
}

// WithMgmtWriteTimeout sets write timeout.
func WithMgmtWriteTimeout(d time.Duration) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.writeTimeout = d }
}

const (
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 5 * time.Second
)

// NewManagementHTTPServer builds an HTTP server holder (lazy start).
func NewManagementHTTPServer(addr string, opts ...ManagementHTTPOption) *ManagementHTTPServer {
	srv := &ManagementHTTPServer{
		addr:         addr,
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(srv)
	}

	srv.app = fiber.New(fiber.Config{
		ReadTimeout:  srv.readTimeout,
		WriteTimeout: srv.writeTimeout,
	})

	return srv
}

// managementBench is what the handlers read from.
type managementBench interface {
	Snapshot() report.Report
	Timer() *stats.Timer
}

// Start launches the listener (idempotent).
func (s *ManagementHTTPServer) Start(ctx context.Context, bench managementBench) error {
	if s.started {
		return nil
	}

	s.mountRoutes(bench)

	lc := net.ListenConfig{}

	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return ewrap.Wrap(err, "mgmt listen")
	}

	s.ln = ln

	go func() {
		// the server is optional; a serve error only ends the endpoint.
		// stdout carries the report, so fiber's banner stays off.
		_ = s.app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	s.started = true

	return nil
}

// Address returns the bound address (useful when passing ":0"). Empty if not started yet.
func (s *ManagementHTTPServer) Address() string {
	if s.ln == nil {
		return ""
	}

	return s.ln.Addr().String()
}

// Shutdown stops the server.
func (s *ManagementHTTPServer) Shutdown(ctx context.Context) error {
	if !s.started {
		return nil
	}

	ch := make(chan error, 1)

	go func() {
		ch <- s.app.Shutdown()
	}()

	select {
	case <-ctx.Done():
		return sentinel.ErrMgmtHTTPShutdownTimeout
	case err := <-ch:
		s.started = false

		return err
	}
}

func (s *ManagementHTTPServer) mountRoutes(bench managementBench) {
	useAuth := s.wrapAuth
	s.registerBasic(useAuth, bench)
	s.registerDays(useAuth, bench)
}

// wrapAuth returns an auth-wrapped handler if authFunc provided.
func (s *ManagementHTTPServer) wrapAuth(handler fiber.Handler) fiber.Handler { //nolint:ireturn
	if s.authFunc == nil {
		return handler
	}

	return func(fiberCtx fiber.Ctx) error {
		authErr := s.authFunc(fiberCtx)
		if authErr != nil {
			return authErr
		}

		return handler(fiberCtx)
	}
}

func (s *ManagementHTTPServer) registerBasic(useAuth func(fiber.Handler) fiber.Handler, bench managementBench) {
	s.app.Get("/health", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.SendString("ok") }))
	s.app.Get("/stats", useAuth(func(fiberCtx fiber.Ctx) error {
		timer := bench.Timer()

		return fiberCtx.JSON(fiber.Map{"timing": timer.GetStats(), "distribution": timer.Distribution()})
	}))
	s.app.Get("/config", useAuth(func(fiberCtx fiber.Ctx) error {
		rep := bench.Snapshot()

		cfg := fiber.Map{
			"strategy": rep.Strategy,
			"value":    rep.Value,
			"runs":     rep.Runs,
			"seed":     rep.Seed,
		}
		if rep.RealTime != nil {
			cfg["realTime"] = fiber.Map{"policy": rep.RealTime.Policy.String(), "priority": rep.RealTime.Priority}
		}

		return fiberCtx.JSON(cfg)
	}))
	s.app.Get("/report", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.JSON(bench.Snapshot()) }))
}

func (s *ManagementHTTPServer) registerDays(useAuth func(fiber.Handler) fiber.Handler, bench managementBench) {
	s.app.Get("/days", useAuth(func(fiberCtx fiber.Ctx) error {
		rep := bench.Snapshot()

		return fiberCtx.JSON(fiber.Map{"run": rep.Run, "populated": rep.Populated, "gaps": rep.Gaps, "days": rep.Days})
	}))
	s.app.Get("/days/:day", useAuth(func(fiberCtx fiber.Ctx) error {
		day, err := strconv.Atoi(fiberCtx.Params("day"))
		if err != nil {
			return fiberCtx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid day"})
		}

		for _, stat := range bench.Snapshot().Days {
			if stat.DayIndex == day {
				return fiberCtx.JSON(stat)
			}
		}

		return fiberCtx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "day not populated"})
	}))
}

package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/jazzyframework/jazzy/config"
	"github.com/jazzyframework/jazzy/metrics"
)

const instrumentationName = "github.com/jazzyframework/jazzy/http"

// Server accepts TCP connections and runs one connection handler
// goroutine per accepted connection, unbounded. The accept loop never
// waits on a handler; there is no pool and no backpressure, so load
// translates directly into goroutine count.
type Server struct {
	Router  *Router
	Metrics *metrics.Metrics

	logger *slog.Logger
}

// NewServer wires a server around the given router. When metrics are
// enabled, a GET /metrics route serving the plain text report is
// registered; it replaces any route registered under the exact same
// method and path.
func NewServer(cfg config.Config, router *Router, m *metrics.Metrics) *Server {
	if m == nil {
		m = metrics.New()
	}

	logger := slog.Default()
	if cfg.EnableTelemetry {
		logger = otelslog.NewLogger(instrumentationName)
	}

	s := &Server{
		Router:  router,
		Metrics: m,
		logger:  logger,
	}

	if cfg.EnableMetrics {
		router.GET("/metrics", "metrics", func(req *Request) any {
			return m.Report()
		})
		s.logger.Info("Metrics route added")
	}

	return s
}

// ListenAndServe listens on the given port and serves until ctx is done
// or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.logger.Info("Server started", "port", port)
	return s.Serve(ctx, listener)
}

// Serve is the spawn point: accept, hand the connection to a fresh
// goroutine, repeat. Kept isolated so a bounded pool could replace the
// spawn without touching the parsing state machine.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		go s.handleConn(ctx, conn)
	}
}

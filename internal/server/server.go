// Package server hosts the HTTP surface next to the MCP transport: health
// and version endpoints for orchestrators, behind the shared middleware
// chain.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/swaplens/swaplens/internal/core"
	apperrors "github.com/swaplens/swaplens/internal/errors"
	"github.com/swaplens/swaplens/internal/metrics"
	"github.com/swaplens/swaplens/internal/server/handlers"
	servermw "github.com/swaplens/swaplens/internal/server/middleware"
)

// Options carries the server's injected collaborators.
type Options struct {
	Host    string
	Port    int
	Version handlers.VersionInfo

	Aggregator *core.Aggregator
	Limiter    *core.RateLimiter
	Metrics    *metrics.App
	Logger     *zap.Logger
}

// Server is the HTTP companion process surface.
type Server struct {
	router *chi.Mux
	server *http.Server
	host   string
	port   int
	app    *metrics.App
	logger *zap.Logger
}

// New builds the router and registers all routes.
func New(opts Options) *Server {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Middleware order: correlation first, then admission, then recovery.
	r.Use(chimw.RealIP)
	r.Use(servermw.RequestID)
	if opts.Limiter != nil {
		r.Use(servermw.RateLimit(opts.Limiter, opts.Metrics))
	}
	r.Use(servermw.Recovery(opts.Metrics, logger))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		apperrors.RespondWithError(w, req, apperrors.NewNotFoundError("The requested resource was not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		apperrors.RespondWithError(w, req, apperrors.NewMethodNotAllowedError("The requested method is not allowed for this resource"))
	})

	health := handlers.NewHealth(opts.Aggregator, opts.Version.Version)
	version := handlers.NewVersion(opts.Version)

	r.Get("/health", health.Aggregate)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Get("/version", version.Handle)

	return &Server{
		router: r,
		host:   opts.Host,
		port:   opts.Port,
		app:    opts.Metrics,
		logger: logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ConnState:    trackConnState(s.app),
	}

	s.logger.Info("starting HTTP server",
		zap.String("host", s.host),
		zap.Int("port", s.port))

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// trackConnState feeds the active-connection gauge from the listener's
// connection lifecycle. StateHijacked counts as closed: the server no
// longer owns the connection.
func trackConnState(app *metrics.App) func(net.Conn, http.ConnState) {
	return func(_ net.Conn, state http.ConnState) {
		switch state {
		case http.StateNew:
			app.ConnOpened()
		case http.StateClosed, http.StateHijacked:
			app.ConnClosed()
		}
	}
}

// Package server exposes the conversion pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/render?format=svg|png|json   DOT body, returns the rendered scene
//	POST /v1/layout                       DOT body, returns the laid-out DOT
//	GET  /healthz                         liveness, and cache reachability
//
// The render and layout endpoints also accept a JSON body of the form
//
//	{"graph": "digraph { a -> b }", "options": {"policy": "polyline"}}
//
// where options override the server defaults field by field.
//
// Every request gets a request id, echoed in the X-Request-Id response
// header and attached to all log lines for that request. A valid UUID sent by
// the client in X-Request-Id is reused.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/animaut/pkg/pipeline"
)

// DefaultAddr is the listen address of the serve command.
const DefaultAddr = ":8080"

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 2 << 20

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server serves conversions from a shared pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	base    pipeline.Options
	logger  *log.Logger
	maxBody int64
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodyBytes limits the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// New creates a server. base holds the defaults that requests override;
// snapshots are always disabled.
func New(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	base.NoSnapshots = true
	base.Logger = nil
	s := &Server{runner: runner, base: base, logger: logger, maxBody: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/layout", s.handleLayout)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

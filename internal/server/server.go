// Package server exposes the benchmark over HTTP: a comparison endpoint, a
// health probe and Prometheus metrics, with structured request logging and
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/SecondBook5/MatrixMultiplication/internal/config"
	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
)

// Timeouts groups the HTTP server's time limits.
type Timeouts struct {
	// ReadTimeout bounds reading the request, including the body.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration
	// IdleTimeout bounds keep-alive connections between requests.
	IdleTimeout time.Duration
	// RequestTimeout bounds a single comparison run.
	RequestTimeout time.Duration
	// ShutdownTimeout bounds the graceful shutdown drain.
	ShutdownTimeout time.Duration
}

// DefaultServerTimeouts returns the standard production timeouts. The
// request timeout is generous because large matrix comparisons are slow by
// design.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    5 * time.Minute,
		IdleTimeout:     60 * time.Second,
		RequestTimeout:  5 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
	}
}

// MaxRequestSize caps the comparison request size. Inline matrices grow
// quadratically with n, so the cap is the real guard against abuse.
const MaxRequestSize = 32 * 1024 * 1024

// MaxBenchmarkSize caps the matrix size a single request may ask for.
// Larger sizes belong in an offline CLI run, not a synchronous handler.
const MaxBenchmarkSize = 1024

// Server wraps the standard http.Server with the benchmark handlers,
// structured logging, Prometheus metrics and graceful shutdown.
type Server struct {
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         zerolog.Logger
	shutdownSignal chan os.Signal
	metrics        *Metrics
	timeouts       Timeouts
}

// Option customizes a Server during construction.
type Option func(*Server)

// WithLogger replaces the default logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithTimeouts replaces the default timeouts. Used by tests to shrink the
// request timeout.
func WithTimeouts(t Timeouts) Option {
	return func(s *Server) { s.timeouts = t }
}

// NewServer builds a Server around the given configuration.
//
// Parameters:
//   - cfg: The application configuration (port, engine defaults).
//   - opts: Optional customizations (logger, timeouts).
//
// Returns:
//   - *Server: The initialized server, ready to Start.
func NewServer(cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		cfg:            cfg,
		logger:         zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger(),
		shutdownSignal: make(chan os.Signal, 1),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/compare", s.wrapWithMiddleware(s.handleCompare))
	mux.HandleFunc("/healthz", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.handleMetrics)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s
}

// Handler exposes the server's HTTP handler for tests using httptest.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// wrapWithMiddleware applies the middleware chain: logging, then metrics,
// then the handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	return wrapped
}

// loggingMiddleware logs one structured line per request.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

// Start runs the HTTP server until a SIGINT/SIGTERM arrives or the listener
// fails, then drains connections within the shutdown timeout.
//
// Returns:
//   - error: A ServerError if startup or the graceful shutdown fails.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("starting server")
		s.logger.Info().Msg("endpoints: POST /api/v1/compare, GET /healthz, GET /metrics")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Info().Msg("shutdown signal received, draining connections")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}
	s.logger.Info().Msg("server stopped gracefully")
	return nil
}

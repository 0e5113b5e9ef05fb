// Package server is the preview HTTP server. It serves the last successful build
// while the watcher rebuilds in the background.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"git.home.luguber.info/inful/sitenav/internal/build"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/render"
)

// Server represents the preview server.
type Server struct {
	Addr     string
	router   *chi.Mux
	server   *http.Server
	errs     *errors.HTTPErrorAdapter
	recorder *metrics.PrometheusRecorder

	current atomic.Pointer[build.Result]
	lastErr atomic.Pointer[failure]
}

type failure struct {
	err error
	at  time.Time
}

// New creates a preview server. recorder may be nil, in which case /metrics is not mounted.
func New(addr string, recorder *metrics.PrometheusRecorder) *Server {
	s := &Server{
		Addr:     addr,
		router:   chi.NewRouter(),
		errs:     errors.NewHTTPErrorAdapter(nil),
		recorder: recorder,
	}
	s.setupRoutes()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(s.recoverPanics)

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/config.json", s.handleConfig(render.FormatJSON))
	s.router.Get("/config/{format}", s.handleConfigFormat)
	s.router.Get("/sidebar", s.handleSidebar)
	s.router.Get("/report", s.handleReport)
	s.router.Get("/validation", s.handleValidation)
	s.router.Get("/edit", s.handleEdit)
	if s.recorder != nil {
		s.router.Method(http.MethodGet, "/metrics", s.recorder.Handler())
	}
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Publish makes res the build served to clients and clears the last failure.
func (s *Server) Publish(res *build.Result) {
	s.current.Store(res)
	s.lastErr.Store(nil)
}

// Fail records a failed rebuild. The previous build keeps being served.
func (s *Server) Fail(err error) {
	s.lastErr.Store(&failure{err: err, at: time.Now()})
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", logfields.Addr(s.Addr))
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.WrapError(err, errors.CategoryRuntime, "preview server failed").
			WithContext("addr", s.Addr).
			Build()
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return errors.WrapError(err, errors.CategoryRuntime, "preview server shutdown failed").Build()
		}
		return nil
	}
}

// latest returns the served build or writes a 503 when none succeeded yet.
func (s *Server) latest(w http.ResponseWriter, r *http.Request) (*build.Result, bool) {
	res := s.current.Load()
	if res == nil {
		s.errs.WriteErrorResponse(w, r, errors.RuntimeError("no successful build yet").Warning().Build())
		return nil, false
	}
	return res, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

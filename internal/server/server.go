// Package server exposes the scheduling engine over HTTP.
//
// The API is JSON over REST, mounted under /api/v1. Scheduling endpoints are
// stateless: clients post a task list and receive the computed schedule.
// Project CRUD is backed by a pluggable [store.Store]. Schedule responses are
// memoized in a [cache.Cache] keyed by a content hash of the request, so
// repeated lookups of the same network skip the recompute.
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

	"github.com/slacklinehq/slackline/pkg/cache"
	"github.com/slacklinehq/slackline/pkg/store"
)

// Config holds server settings.
type Config struct {
	Addr         string        // listen address, e.g. ":8080"
	ReadTimeout  time.Duration // zero means DefaultReadTimeout
	WriteTimeout time.Duration // zero means DefaultWriteTimeout
}

// Default timeouts applied when Config leaves them zero.
const (
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
)

// Server serves the scheduling API.
type Server struct {
	cfg    Config
	store  store.Store
	cache  cache.Cache
	logger *log.Logger

	httpServer *http.Server
}

// New creates a server. A nil cache disables schedule memoization
// (a NullCache is substituted); the store is required.
func New(cfg Config, st store.Store, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	return &Server{cfg: cfg, store: st, cache: c, logger: logger}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/schedule", s.handleSchedule)
		r.Post("/drag", s.handleDrag)
		r.Post("/practice", s.handlePractice)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.handleListProjects)
			r.Post("/", s.handleCreateProject)
			r.Get("/{id}", s.handleGetProject)
			r.Put("/{id}", s.handlePutProject)
			r.Delete("/{id}", s.handleDeleteProject)
			r.Get("/{id}/schedule", s.handleProjectSchedule)
		})
	})

	return r
}

// Start listens on the configured address and serves until ctx is canceled,
// then drains in-flight requests with a shutdown grace period.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(listener)
	}()
	s.logger.Info("listening", "addr", listener.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

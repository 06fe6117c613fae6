// Package server exposes the schedule repository and layout engine over
// HTTP.
//
// Routes are mounted under /api:
//
//	POST   /api/schedules             create a schedule
//	GET    /api/schedules             list schedules, with optional filters
//	GET    /api/schedules/{id}        fetch one schedule
//	DELETE /api/schedules/{id}        delete a schedule (children are detached)
//	POST   /api/schedules/{id}/parents  attach additional parents
//	GET    /api/layout                compute a layout of the current schedules
//	GET    /api/render                render the hierarchy as DOT or SVG
//	GET    /healthz                   liveness probe
//
// All responses are JSON except /api/render. Errors use a stable
// envelope with the machine-readable code from pkg/errors:
//
//	{"error": {"code": "TIME_RANGE_OVERLAPS", "message": "..."}}
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mgrundel/timelane/pkg/cache"
	"github.com/mgrundel/timelane/pkg/config"
	"github.com/mgrundel/timelane/pkg/schedule"
	"github.com/mgrundel/timelane/pkg/store"
)

// Server wires the repository, persistence, cache and HTTP routing.
type Server struct {
	mu      sync.Mutex
	manager *schedule.Manager

	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
	cfg    config.Config
	logger *log.Logger
}

// Options configures a server. Manager is required; nil Store disables
// persistence and nil Cache disables caching.
type Options struct {
	Manager *schedule.Manager
	Store   store.Store
	Cache   cache.Cache
	Config  config.Config
	Logger  *log.Logger
}

// New creates a server over an existing repository.
func New(opts Options) *Server {
	c := opts.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		manager: opts.Manager,
		store:   opts.Store,
		cache:   c,
		keyer:   cache.NewDefaultKeyer(),
		cfg:     opts.Config,
		logger:  logger,
	}
}

// Router builds the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Get("/", s.handleList)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Delete("/", s.handleDelete)
				r.Post("/parents", s.handleAddParents)
			})
		})
		r.Get("/layout", s.handleLayout)
		r.Get("/render", s.handleRender)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// persist saves the repository state after a successful mutation.
// Persistence failures are logged but do not fail the request; the
// in-memory state is authoritative.
func (s *Server) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.manager); err != nil {
		s.logger.Error("persist failed", "err", err)
	}
}

// Package server exposes the dashboard over HTTP: an HTML page plus a JSON
// API, xlsx export, PNG charts and text brief downloads. Every request
// recomputes its view from the current dataset snapshot.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Sharon-codes/UIDAI-Hackathon/dataset"
	"github.com/Sharon-codes/UIDAI-Hackathon/engine"
)

// Option configures a Server.
type Option func(*Server)

// WithTopN sets the ranking size.
func WithTopN(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithAllowedOrigins sets the CORS origin allow-list.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// WithClock overrides the time source used for report stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// Server serves one dataset store.
type Server struct {
	store   *dataset.Store
	topN    int
	origins []string
	now     func() time.Time
	router  *mux.Router
}

// New builds a server and registers its routes.
func New(store *dataset.Store, opts ...Option) *Server {
	s := &Server{
		store:   store,
		topN:    engine.DefaultTopN,
		origins: []string{"*"},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = mux.NewRouter()
	s.router.Use(RecoveryMiddleware)
	s.router.Use(LoggingMiddleware)
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.router
	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/states", s.handleStates).Methods(http.MethodGet)
	api.HandleFunc("/states/{state}/districts", s.handleDistricts).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	api.HandleFunc("/districts/{state}/{district}/brief", s.handleBrief).Methods(http.MethodGet)
	api.HandleFunc("/districts/{state}/{district}/radar", s.handleRadar).Methods(http.MethodGet)
	api.HandleFunc("/districts/{state}/{district}/report", s.handleReport).Methods(http.MethodGet)
	api.HandleFunc("/export.xlsx", s.handleExport).Methods(http.MethodGet)
	api.HandleFunc("/charts/{chart:[a-z-]+}.png", s.handleChart).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

// Handler returns the router wrapped in CORS handling. CORS sits outside the
// router so preflight requests never reach route matching.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match", "Origin", "X-Requested-With"},
		ExposedHeaders: []string{"ETag", "Content-Disposition", "Content-Length"},
		MaxAge:         86400,
	})
	return c.Handler(s.router)
}

// ListenAndServe runs until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("🚀 Pulse: dashboard listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err, ok := <-serverErrors:
		if ok {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		log.Printf("🛑 Pulse: shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Printf("✅ Pulse: server stopped")
	return nil
}

// view returns the current snapshot as a RecordView (empty before load).
func (s *Server) view() engine.RecordView {
	return engine.NewRecordView(s.store.Records())
}

func (s *Server) build(state, search string) *engine.Dashboard {
	return engine.Build(s.view(), engine.ViewState{StateFilter: state, Search: search}, engine.WithTopN(s.topN))
}

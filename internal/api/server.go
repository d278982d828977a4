// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/leminhkhoa/shelfwise/internal/borrow"
	"github.com/leminhkhoa/shelfwise/internal/catalog"
	"github.com/leminhkhoa/shelfwise/internal/metrics"
	"github.com/leminhkhoa/shelfwise/internal/platform/config"
	"github.com/leminhkhoa/shelfwise/internal/platform/constants"
	"github.com/leminhkhoa/shelfwise/internal/platform/middleware"
	"github.com/leminhkhoa/shelfwise/internal/session"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Root is the GET / handler — plain-text liveness text for external pollers.
	Root http.HandlerFunc

	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// MetricsExposition serves the Prometheus scrape endpoint.
	MetricsExposition http.Handler

	// Session handles token issuance and logout.
	Session *session.Handler

	// Catalog handles book and category routes.
	Catalog *catalog.Handler

	// Borrow handles the lending workflow.
	Borrow *borrow.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, recorder metrics.Recorder, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Metrics(recorder))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for external pollers and container orchestration.
	r.Get("/", h.Root)
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", h.MetricsExposition)

	// # Application API
	// The route shape is flat (no version prefix): the lending frontend
	// consumes these paths directly. Session endpoints register on the root
	// mux because their paths collide with the catalog mount below.
	r.Post("/jwt", h.Session.IssueToken)
	r.Post("/logout", h.Session.Logout)

	r.Mount("/borrow", h.Borrow.Routes())
	r.Mount("/", h.Catalog.Routes())

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

The route tree is statically partitioned into two credential surfaces: the
session surface (cookie-resolved principal) and the share surface (path
token). No route belongs to both.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/buihoang/memoria/internal/album"
	"github.com/buihoang/memoria/internal/auth"
	"github.com/buihoang/memoria/internal/invite"
	"github.com/buihoang/memoria/internal/photo"
	"github.com/buihoang/memoria/internal/platform/config"
	"github.com/buihoang/memoria/internal/platform/constants"
	"github.com/buihoang/memoria/internal/platform/middleware"
	"github.com/buihoang/memoria/internal/share"
	"github.com/buihoang/memoria/internal/tag"
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
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles login, logout, and the current-account endpoint.
	Auth *auth.Handler

	// Invite handles viewer enrollment (issue + accept).
	Invite *invite.Handler

	// Photo handles uploads, listings, and session-surface media delivery.
	Photo *photo.Handler

	// Album handles curated collections.
	Album *album.Handler

	// Tag exposes the tag vocabulary.
	Tag *tag.Handler

	// Share handles link issuance and the anonymous share surface.
	Share *share.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, sessions middleware.SessionResolver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {

		// Session surface: the cookie is resolved once here; guards on the
		// individual routes turn anonymity into 401/403.
		api.Group(func(session chi.Router) {
			session.Use(middleware.ResolvePrincipal(sessions))

			session.Route("/auth", h.Auth.RegisterRoutes)
			session.Route("/invites", h.Invite.RegisterRoutes)
			session.Route("/photos", h.Photo.RegisterRoutes)
			session.Route("/media", h.Photo.RegisterMediaRoutes)
			session.Route("/albums", h.Album.RegisterRoutes)
			session.Route("/tags", h.Tag.RegisterRoutes)
			session.Route("/share-links", h.Share.RegisterAdminRoutes)
		})

		// Share surface: no cookie resolution. The path token is the only
		// credential, and it is interpreted inside the share service.
		api.Route("/share", h.Share.RegisterPublicRoutes)
	})

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

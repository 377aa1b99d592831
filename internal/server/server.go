package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/kimianj/Continuum/internal/auth"
	"github.com/kimianj/Continuum/internal/config"
	"github.com/kimianj/Continuum/internal/http/handlers"
	"github.com/kimianj/Continuum/internal/middleware"
	"github.com/kimianj/Continuum/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, logger *slog.Logger) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)

	authHandler := handlers.NewAuthHandler(store, tokens, logger, cfg.MinPasswordLength)
	notesHandler := handlers.NewNotesHandler(store, logger)
	adminHandler := handlers.NewAdminHandler(store, logger)
	healthHandler := handlers.NewHealthHandler(time.Now())

	requireAuth := middleware.RequireAuth(logger, tokens)
	requireAdmin := middleware.RequireAdmin()

	authed := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return requireAuth(requireAdmin(h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Check)

	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.Handle("GET /auth/me", authed(authHandler.Me))

	mux.Handle("GET /notes", authed(notesHandler.List))
	mux.Handle("POST /notes", authed(notesHandler.Create))
	mux.Handle("GET /notes/{id}", authed(notesHandler.Get))
	mux.Handle("PUT /notes/{id}", authed(notesHandler.Update))
	mux.Handle("DELETE /notes/{id}", authed(notesHandler.Delete))

	mux.Handle("GET /admin/notes", adminOnly(adminHandler.Notes))
	mux.Handle("GET /admin/users", adminOnly(adminHandler.Users))
	mux.Handle("GET /admin/stats", adminOnly(adminHandler.Stats))

	handler := middleware.RequestID(
		middleware.Logging(logger)(
			middleware.Recovery(logger)(
				middleware.CORS(cfg.CORSOrigins)(mux))))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler exposes the fully wired handler chain, used by tests.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

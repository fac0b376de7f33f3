package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/smartbreak/smartbreak-core/internal/auth"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(s.cfg.CORS.AllowedOrigins),
		AllowedMethods: allowedOrDefault(s.cfg.CORS.AllowedMethods,
			[]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		AllowedHeaders: allowedOrDefault(s.cfg.CORS.AllowedHeaders,
			[]string{"Authorization", "Content-Type", "X-Request-ID"}),
		MaxAge: 86400, //nolint:mnd // 24h preflight cache
	}))
	r.Use(s.bodySizeLimitMiddleware)

	// Base route (ping)
	r.Get("/", s.handleRoot)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// User endpoints (open registration and listing)
		r.Route("/usuarios", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleRegister)
		})

		// Auth endpoints (no auth required)
		r.Post("/auth/login", s.handleLogin)

		// Space catalogue (browsing is open; creation is admin-only)
		r.Route("/espacios", func(r chi.Router) {
			r.Get("/", s.handleListSpaces)
			r.Get("/{id}", s.handleGetSpace)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Use(s.requireRole(auth.RoleAdmin))
				r.Post("/", s.handleCreateSpace)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/me", s.handleMe)

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(auth.RoleAdmin))
				r.Post("/admin/only", s.handleAdminOnly)
			})
		})
	})

	return r
}

// handleRoot returns the API ping message.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "API SmartBreak funcionando 🧠",
	})
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

// allowedOrigins returns the configured origins, defaulting to all.
func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// allowedOrDefault returns values or the default list if empty.
func allowedOrDefault(values, defaults []string) []string {
	if len(values) == 0 {
		return defaults
	}
	return values
}

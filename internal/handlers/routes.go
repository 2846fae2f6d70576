package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger) // Custom conditional HTTP logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Static files (served from embedded filesystem)
	r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))

	// Planner page
	r.Get("/", h.handleIndex)

	// WebSocket
	r.Get("/ws", h.Hub.ServeWs)

	// Prometheus
	r.Handle("/metrics", h.Metrics)

	r.Route("/api", func(r chi.Router) {
		// Catalog
		r.Get("/boards", h.handleGetBoards)
		r.Get("/boards/{id}", h.handleGetBoard)
		r.Get("/components", h.handleGetComponents)
		r.Get("/components/{id}", h.handleGetComponent)
		r.Get("/components/{id}/dependencies", h.handleGetDependencies)

		// Planning session
		r.Get("/session", h.handleGetSession)
		r.Put("/session/board", h.handleSelectBoard)
		r.Post("/session/validate", h.handleValidatePlacement)
		r.Post("/session/placements", h.handlePlaceComponent)
		r.Delete("/session/placements/{pin}", h.handleRemovePlacement)
		r.Post("/session/clear", h.handleClearSession)
		r.Get("/session/wiring", h.handleGetWiring)
		r.Get("/session/project", h.handleGetSessionProject)
		r.Get("/session/export.md", h.handleExportSession)

		// Auth
		r.Get("/auth", h.handleAuthStatus)
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)

		// Saved projects
		r.Get("/projects", h.handleListProjects)
		r.Get("/projects/{id}", h.handleGetProject)
		r.Get("/projects/{id}/qr", h.handleGetProjectQR)
		r.Get("/projects/{id}/share", h.handleGetShareURL)
		r.Get("/projects/{id}/export.md", h.handleExportProject)
		r.Post("/projects/{id}/load", h.handleLoadProject)

		r.Get("/settings", h.handleGetSettings)

		// Project store and settings mutations (protected when a password is set)
		r.Group(func(r chi.Router) {
			r.Use(h.Auth.RequireAuthAPI)
			r.Post("/projects", h.handleSaveProject)
			r.Post("/projects/import", h.handleImportProject)
			r.Delete("/projects/{id}", h.handleDeleteProject)
			r.Put("/settings", h.handleUpdateSettings)
		})
	})

	return r
}

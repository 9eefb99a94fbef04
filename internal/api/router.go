package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notiongrid/internal/metrics"
)

// NewRouter creates and configures the HTTP router
func NewRouter(handler *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(corsOrigins))
	r.Use(metrics.Middleware)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Get("/test", handler.Health)
		r.Post("/validate", handler.Validate)
		r.Post("/database", handler.Database)
		r.Post("/sync", handler.Sync)
		r.Post("/embed", handler.Embed)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusNotFound, "Invalid endpoint")
		})
	})

	// Viewer pages
	r.Get("/", handler.Landing)
	r.Get("/embed/{token}", handler.EmbedPage)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

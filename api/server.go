/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. The
// origins slice feeds the CORS allowlist; empty means same-origin only.
func NewRouter(h *Handler, origins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/days", func(r chi.Router) {
			r.Get("/{date}", h.GetDay)
			r.Get("/{date}/default", h.GetDefaultEntry)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Put("/{date}", h.PutEntry)
			r.Delete("/{date}", h.DeleteEntry)
		})
		r.Post("/swap", h.SwapDays)

		r.Get("/months/{month}", h.GetMonth)
		r.Get("/presence", h.GetPresence)
		r.Get("/dashboard", h.GetDashboard)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.PutSettings)
		})
		r.Put("/paid-hours/{month}", h.PutPaidHours)

		r.Get("/validation", h.GetValidation)
		r.Get("/export", h.Export)
		r.Post("/report/grid", h.PostGrid)
	})

	return r
}

package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/otoboard/otoboard/internal/middleware/metrics"
	"github.com/otoboard/otoboard/internal/setup"
)

// New creates and configures the chi router with all the routes.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)

	// CORS for the app frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		// Read endpoints: anonymous visitors get the shared counts without
		// per-viewer like state.
		r.Group(func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Get("/categories/{category}/channels/{channel}", h.GetChannel)
			r.Get("/categories/{category}/threads/{thread}", h.GetThread)
		})

		// Write endpoints require a signed-in user.
		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Post("/categories/{category}/threads/{thread}/like", h.ToggleThreadLike)
			r.Post("/categories/{category}/threads/{thread}/comments", h.CreateComment)
			r.Post("/categories/{category}/threads/{thread}/comments/{comment}/like", h.ToggleCommentLike)
			r.Get("/users/me/settings", h.GetSettings)
			r.Put("/users/me/settings/{key}", h.UpdateSetting)
		})
	})

	return r
}

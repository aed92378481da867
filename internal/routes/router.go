package routes

import (
	"net/http"
	"time"

	"campus-hub/agora/internal/api"
	"campus-hub/agora/internal/logging"
	"campus-hub/agora/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterRoutes builds the chi router over an already-initialized
// dependency container.
func RegisterRoutes(deps *api.Dependencies, upSince time.Time) http.Handler {

	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Logging)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	r.Get("/healthCheck", api.HealthCheckHandler(deps, upSince))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/session", api.CreateSessionHandler(deps))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", api.ListAccountsHandler(deps))
			r.Post("/", api.CreateAccountHandler(deps))
			r.Get("/online", api.OnlineUsersHandler(deps))
			r.Get("/{id}", api.GetAccountHandler(deps))
			r.Patch("/{id}", api.UpdateAccountHandler(deps))
			r.Delete("/{id}", api.DeleteAccountHandler(deps))
			r.Get("/login/{login}", api.GetAccountByLoginHandler(deps))
			r.Post("/login/{login}/sync", api.SyncAccountHandler(deps))
			r.Get("/login/{login}/projects", api.ListProjectsByLoginHandler(deps))
			r.Get("/login/{login}/messages", api.ListMessagesForUserHandler(deps))
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", api.ListProjectsHandler(deps))
			r.Post("/", api.CreateProjectHandler(deps))
			r.Get("/{id}", api.GetProjectHandler(deps))
			r.Patch("/{id}", api.UpdateProjectHandler(deps))
			r.Delete("/{id}", api.DeleteProjectHandler(deps))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", api.ListEventsHandler(deps))
			r.Post("/", api.CreateEventHandler(deps))
			r.Get("/{id}", api.GetEventHandler(deps))
		})

		r.Route("/community-events", func(r chi.Router) {
			r.Get("/", api.ListCommunityEventsHandler(deps))

			// mutations require a session
			r.Group(func(r chi.Router) {
				r.Use(middleware.SessionAuth)
				r.Post("/", api.CreateCommunityEventHandler(deps))
				r.Patch("/{id}", api.UpdateCommunityEventHandler(deps))
				r.Delete("/{id}", api.DeleteCommunityEventHandler(deps))
			})
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", api.ListMessagesHandler(deps))
			r.Get("/{id}", api.GetMessageHandler(deps))

			r.Group(func(r chi.Router) {
				r.Use(middleware.SessionAuth)
				r.Post("/", api.SendMessageHandler(deps))
				r.Delete("/{id}", api.DeleteMessageHandler(deps))
			})
		})

		r.Get("/campuses/{campus}/peers", api.GetActivePeersHandler(deps))
	})

	return r
}

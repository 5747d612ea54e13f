package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.settings.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// service endpoints
	router.Get("/healthz", h.healthz)
	router.Get("/version", h.getServerVersion)
	router.Handle("/metrics", h.metrics.handler())
	router.Get("/files/raw/{user}/{name}", h.downloadRawFile)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		// routes without authorization
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
		r.Post("/auth/logout", h.logout)
		r.Get("/auth/google", h.beginGoogleLogin)
		r.Get("/auth/google/callback", h.completeGoogleLogin)

		// bearer token or session cookie
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate(h.identity))

			r.Get("/auth/me", h.me)
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.listTasks)
				r.Post("/", h.createTask)
				r.Get("/{id}", h.getTask)
				r.Put("/{id}", h.updateTask)
				r.Delete("/{id}", h.deleteTask)
			})
		})

		// bearer token only
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate(h.bearerOnly))

			r.Post("/upload", h.uploadFile)
			r.Get("/files", h.listFiles)
			r.Delete("/files/{name}", h.deleteFile)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

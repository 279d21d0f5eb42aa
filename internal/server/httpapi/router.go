// Package httpapi exposes the development server's JSON API over chi.
//
// Routes:
//
//	POST   /auth/register              public
//	POST   /auth/login                 public
//	GET    /api/projects               bearer token
//	POST   /api/projects               bearer token
//	GET    /api/projects/{id}/secrets  bearer token
//	POST   /api/secrets                bearer token
//	DELETE /api/secrets/{id}           bearer token
//
// Errors are returned as {"error": "<message>"}.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/ciphersafe/internal/logging"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires handlers, authentication, CORS for allowedOrigins and
// request logging.
func NewRouter(h *Handlers, jwtSecret []byte, allowedOrigins []string, logger logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(CORS(allowedOrigins))
	r.Use(RequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticate(jwtSecret))

		r.Get("/projects", h.ListProjects)
		r.Post("/projects", h.CreateProject)
		r.Get("/projects/{id}/secrets", h.ListSecrets)
		r.Post("/secrets", h.CreateSecret)
		r.Delete("/secrets/{id}", h.DeleteSecret)
	})

	return r
}

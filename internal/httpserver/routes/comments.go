package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/httpserver/handlers"
)

func init() { Register(registerComments, middleware.Timeout(5*time.Second)) }

func registerComments(r chi.Router, d deps.Deps) {
	r.Route("/api/comments", func(r chi.Router) {
		r.Get("/", handlers.ListComments(d))
		r.Patch("/{id}", handlers.UpdateComment(d))
		r.Post("/{id}/resolve", handlers.ResolveComment(d))
		r.Delete("/{id}", handlers.DeleteComment(d))
	})
}

package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/httpserver/handlers"
)

func init() { Register(registerToolbar, middleware.Timeout(5*time.Second)) }

func registerToolbar(r chi.Router, d deps.Deps) {
	r.Route("/api/toolbar", func(r chi.Router) {
		r.Get("/", handlers.Toolbar(d))
		r.Post("/toggle", handlers.ToolbarToggle(d))
	})
}

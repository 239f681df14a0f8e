package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/httpserver/handlers"
)

func init() { Register(registerOverlay, middleware.Timeout(5*time.Second)) }

func registerOverlay(r chi.Router, d deps.Deps) {
	r.Route("/api/overlay", func(r chi.Router) {
		r.Get("/", handlers.OverlayState(d))
		r.Post("/toggle", handlers.OverlayToggle(d))
		r.Post("/click", handlers.OverlayClick(d))
		r.Post("/submit", handlers.OverlaySubmit(d))
		r.Post("/cancel", handlers.OverlayCancel(d))
	})
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/httpserver/handlers"
)

// No timeout middleware here: the stream is a long-lived connection.
func init() { Register(registerStream) }

func registerStream(r chi.Router, d deps.Deps) {
	r.Get("/api/stream", handlers.Stream(d))
}

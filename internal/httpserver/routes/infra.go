package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/httpserver/handlers"
	"github.com/pinnote/pinnote/internal/httpserver/mw"
)

func init() { Register(registerInfra, middleware.Timeout(5*time.Second)) }

func registerInfra(r chi.Router, d deps.Deps) {
	guard := mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
	r.With(guard).Get("/healthz", handlers.Healthz(d))
	r.With(guard).Get("/readyz", handlers.Readyz(d))
	r.With(guard).Get("/infra", handlers.Infra(d))
	r.With(guard).Post("/reload", handlers.Reload(d))
}

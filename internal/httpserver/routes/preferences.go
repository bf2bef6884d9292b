package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/httpserver/handlers"
	"github.com/dailyglow/glow/internal/httpserver/mw"
)

func init() { Register(registerPreferences) }

func registerPreferences(r chi.Router, d deps.Deps) {
	sub := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	sub.Get("/preferences/categories", handlers.Preferences(d))
	sub.Put("/preferences/categories", handlers.SetPreferences(d))
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/httpserver/handlers"
	"github.com/dailyglow/glow/internal/httpserver/mw"
)

func init() { Register(registerProgress) }

func registerProgress(r chi.Router, d deps.Deps) {
	sub := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	sub.Get("/streak", handlers.Streak(d))
	sub.Get("/achievements", handlers.Achievements(d))
	sub.Get("/progression", handlers.Progression(d))
	sub.Get("/stats", handlers.Stats(d))
	sub.Post("/track/journal", handlers.TrackJournal(d))
	sub.Post("/track/gratitude", handlers.TrackGratitude(d))
	sub.Post("/track/share", handlers.TrackShare(d))
}

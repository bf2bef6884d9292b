package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/httpserver/handlers"
	"github.com/dailyglow/glow/internal/httpserver/mw"
)

func init() { Register(registerAffirmations) }

func registerAffirmations(r chi.Router, d deps.Deps) {
	sub := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	sub.Get("/affirmations", handlers.Affirmations(d))
	sub.Get("/affirmations/{id}", handlers.Affirmation(d))
	sub.Post("/affirmations/{id}/view", handlers.RecordView(d))
	sub.Post("/affirmations/{id}/favorite", handlers.ToggleFavorite(d))
	sub.Get("/favorites", handlers.Favorites(d))
	sub.Get("/favorites/export", handlers.ExportFavorites(d))
	sub.Get("/search", handlers.Search(d))
	sub.Get("/recommendations", handlers.Recommend(d))
	sub.Get("/categories", handlers.Categories(d))
}

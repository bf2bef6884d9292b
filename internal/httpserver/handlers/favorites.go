package handlers

import (
	"net/http"

	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/logger"
)

// Favorites lists all favorited affirmations in catalog order.
func Favorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := d.Selection.Favorites()
		respondJSON(w, http.StatusOK, affirmationListResponse{Affirmations: items, Count: len(items)})
	}
}

// ExportFavorites renders the favorites as shareable plain text.
func ExportFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := d.Selection.ExportFavorites()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(out)); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}

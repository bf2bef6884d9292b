package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dailyglow/glow/internal/domain"
	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/logger"
)

type affirmationListResponse struct {
	Affirmations []*domain.Affirmation `json:"affirmations"`
	Count        int                   `json:"count"`
}

// Affirmations lists the catalog, optionally filtered by category.
func Affirmations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("category")
		if raw == "" {
			items := d.Catalog.All()
			respondJSON(w, http.StatusOK, affirmationListResponse{Affirmations: items, Count: len(items)})
			return
		}

		category, err := domain.ParseCategory(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "unknown category")
			return
		}
		items := d.Catalog.ByCategory(category)
		respondJSON(w, http.StatusOK, affirmationListResponse{Affirmations: items, Count: len(items)})
	}
}

// Affirmation serves a single catalog item by id.
func Affirmation(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		item, ok := d.Catalog.Get(id)
		if !ok {
			respondError(w, http.StatusNotFound, "affirmation not found")
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// RecordView marks an affirmation as viewed by the user.
func RecordView(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.Catalog.Get(id); !ok {
			respondError(w, http.StatusNotFound, "affirmation not found")
			return
		}

		d.Selection.RecordView(r.Context(), id)
		d.Logger.Debug("view recorded", logger.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

type favoriteResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

// ToggleFavorite flips favorite membership and reports the new state.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.Catalog.Get(id); !ok {
			respondError(w, http.StatusNotFound, "affirmation not found")
			return
		}

		favorite := d.Selection.ToggleFavorite(r.Context(), id)
		respondJSON(w, http.StatusOK, favoriteResponse{ID: id, Favorite: favorite})
	}
}

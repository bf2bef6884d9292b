package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dailyglow/glow/internal/domain"
	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/logger"
)

type preferencesResponse struct {
	Categories []domain.Category `json:"categories"`
}

type preferencesRequest struct {
	Categories []string `json:"categories"`
}

// Preferences reports the active category filter; empty means all
// categories are eligible.
func Preferences(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, preferencesResponse{
			Categories: d.Selection.PreferredCategories(),
		})
	}
}

// SetPreferences replaces the category filter. The deck reconciles on the
// next refresh.
func SetPreferences(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req preferencesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		cats := make([]domain.Category, 0, len(req.Categories))
		for _, raw := range req.Categories {
			c, err := domain.ParseCategory(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, "unknown category: "+raw)
				return
			}
			cats = append(cats, c)
		}

		d.Selection.SetPreferredCategories(r.Context(), cats)
		d.Logger.Info("preferred categories updated",
			logger.Int("count", len(cats)))
		respondJSON(w, http.StatusOK, preferencesResponse{Categories: cats})
	}
}

type categoryInfo struct {
	Name        domain.Category `json:"name"`
	Icon        string          `json:"icon"`
	Description string          `json:"description"`
	Count       int             `json:"count"`
}

// Categories lists all known categories with metadata and catalog counts.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]categoryInfo, 0, len(domain.AllCategories))
		for _, c := range domain.AllCategories {
			info := c.Info()
			out = append(out, categoryInfo{
				Name:        c,
				Icon:        info.Icon,
				Description: info.Description,
				Count:       len(d.Catalog.ByCategory(c)),
			})
		}
		respondJSON(w, http.StatusOK, out)
	}
}

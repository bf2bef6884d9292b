package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/logger"
)

const defaultRecommendLimit = 5

// Search matches affirmations by text or category name. An empty query
// returns an empty result set.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		results := d.Selection.Search(query)
		d.Logger.Debug("search request",
			logger.String("query", query),
			logger.Int("results", len(results)))
		respondJSON(w, http.StatusOK, affirmationListResponse{Affirmations: results, Count: len(results)})
	}
}

// Recommend blends time-of-day mood picks with the user's favorite
// categories.
func Recommend(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultRecommendLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				respondError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = n
		}

		results := d.Selection.Recommend(limit)
		respondJSON(w, http.StatusOK, affirmationListResponse{Affirmations: results, Count: len(results)})
	}
}

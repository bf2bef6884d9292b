package handlers

import (
	"net/http"

	"github.com/dailyglow/glow/internal/domain"
	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/logger"
)

type todayResponse struct {
	Affirmation *domain.Affirmation   `json:"affirmation"`
	DisplayText string                `json:"displayText"`
	Batch       []*domain.Affirmation `json:"batch"`
}

// Today serves the item of the day plus its batch. The optional name query
// parameter personalizes the display text.
func Today(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batch := d.Selection.RefreshDaily(r.Context())
		today := d.Selection.Today()
		if today == nil {
			respondError(w, http.StatusNotFound, "no affirmations available")
			return
		}

		respondJSON(w, http.StatusOK, todayResponse{
			Affirmation: today,
			DisplayText: today.DisplayText(r.URL.Query().Get("name")),
			Batch:       batch,
		})
	}
}

// Reshuffle discards the current deck order and serves a fresh batch.
func Reshuffle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batch := d.Selection.Reshuffle(r.Context())
		today := d.Selection.Today()
		if today == nil {
			respondError(w, http.StatusNotFound, "no affirmations available")
			return
		}

		d.Logger.Info("deck reshuffled via endpoint",
			logger.String("remote_ip", r.RemoteAddr))
		respondJSON(w, http.StatusOK, todayResponse{
			Affirmation: today,
			DisplayText: today.DisplayText(r.URL.Query().Get("name")),
			Batch:       batch,
		})
	}
}

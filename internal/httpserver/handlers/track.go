package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dailyglow/glow/internal/httpserver/deps"
)

type journalRequest struct {
	WordCount int `json:"wordCount"`
}

// TrackJournal records a completed journal entry for achievement
// progress.
func TrackJournal(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req journalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.WordCount < 0 {
			respondError(w, http.StatusBadRequest, "wordCount must not be negative")
			return
		}

		d.Achievements.TrackJournalEntry(r.Context(), req.WordCount)
		w.WriteHeader(http.StatusNoContent)
	}
}

type gratitudeRequest struct {
	Count int `json:"count"`
}

// TrackGratitude records the user's total gratitude entries.
func TrackGratitude(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gratitudeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Count < 0 {
			respondError(w, http.StatusBadRequest, "count must not be negative")
			return
		}

		d.Achievements.TrackGratitude(r.Context(), req.Count)
		w.WriteHeader(http.StatusNoContent)
	}
}

// TrackShare records that the user shared an affirmation.
func TrackShare(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Achievements.TrackShare(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

package handlers

import (
	"net/http"

	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/logger"
)

// SessionStart advances the streak, feeds the achievement engine and
// makes sure an item of the day exists. Clients call it on app open.
func SessionStart(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := d.Selection.OnSessionStart(r.Context())
		if today == nil {
			respondError(w, http.StatusNotFound, "no affirmations available")
			return
		}

		respondJSON(w, http.StatusOK, todayResponse{
			Affirmation: today,
			DisplayText: today.DisplayText(r.URL.Query().Get("name")),
			Batch:       d.Selection.TodayBatch(),
		})
	}
}

// Reset wipes all user state: selection data, streak, achievements and
// points. The catalog itself is untouched.
func Reset(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		d.Streak.Reset(ctx)
		d.Achievements.Reset(ctx)
		d.Selection.Reset(ctx)

		d.Logger.Info("user data reset via endpoint",
			logger.String("remote_ip", r.RemoteAddr))
		w.WriteHeader(http.StatusNoContent)
	}
}

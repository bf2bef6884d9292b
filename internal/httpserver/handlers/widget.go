package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dailyglow/glow/internal/domain"
	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/logger"
	"github.com/dailyglow/glow/internal/store"
)

// Widget serves the minimal snapshot a widget or lock-screen surface
// needs, straight from the store without touching the selection service.
func Widget(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := d.Store.GetString(r.Context(), store.KeyWidgetSnapshot)
		if err != nil {
			d.Logger.Warn("failed to read widget snapshot", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "snapshot unavailable")
			return
		}
		if raw == "" {
			respondError(w, http.StatusNotFound, "no snapshot yet")
			return
		}

		var snap domain.WidgetSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			d.Logger.Warn("corrupt widget snapshot", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "snapshot unavailable")
			return
		}
		respondJSON(w, http.StatusOK, snap)
	}
}

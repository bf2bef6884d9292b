package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dailyglow/glow/internal/httpserver/deps"
)

type componentStatus struct {
	OK                 bool   `json:"ok"`
	AffirmationsLoaded *int   `json:"affirmations_loaded,omitempty"`
	LastReload         string `json:"last_reload,omitempty"`
	Mode               string `json:"mode,omitempty"`
	Impact             string `json:"impact,omitempty"`
	Error              string `json:"error,omitempty"`
}

type infraResponse struct {
	ServiceMode string                     `json:"service_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		count := d.Catalog.Count()
		lastReload := d.Catalog.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"library": {
				OK:                 count > 0,
				AffirmationsLoaded: &count,
				LastReload:         lastReloadStr,
			},
			"store": checkStore(d),
		}

		response := infraResponse{
			ServiceMode: determineServiceMode(components),
			Components:  components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineServiceMode(components map[string]componentStatus) string {
	if library, exists := components["library"]; exists {
		if !library.OK || (library.AffirmationsLoaded != nil && *library.AffirmationsLoaded == 0) {
			return "critical" // No affirmations loaded = nothing to serve
		}
	}

	// Store down is non-fatal: decks and streaks keep running in memory.
	if store, exists := components["store"]; exists && !store.OK {
		return "degraded"
	}

	return "ok"
}

func checkStore(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "memory",
			Impact: "state-lost-on-restart",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "redis",
		Impact: "persistence-enabled",
		Error:  "none",
	}
}

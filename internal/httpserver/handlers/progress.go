package handlers

import (
	"net/http"
	"time"

	"github.com/dailyglow/glow/internal/domain"
	"github.com/dailyglow/glow/internal/httpserver/deps"
)

type streakResponse struct {
	Count    int        `json:"count"`
	LastDate *time.Time `json:"lastDate,omitempty"`
}

// Streak reports the current daily streak.
func Streak(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := streakResponse{Count: d.Streak.Count()}
		if last := d.Streak.LastQualifyingDate(); !last.IsZero() {
			resp.LastDate = &last
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

type achievementsResponse struct {
	Achievements []domain.Achievement `json:"achievements"`
	Unlocked     int                  `json:"unlocked"`
	Total        int                  `json:"total"`
}

// Achievements lists the full achievement catalog with the user's
// progress merged in.
func Achievements(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := d.Achievements.Achievements()
		respondJSON(w, http.StatusOK, achievementsResponse{
			Achievements: list,
			Unlocked:     d.Achievements.UnlockedCount(),
			Total:        len(list),
		})
	}
}

type progressionResponse struct {
	TotalPoints       int     `json:"totalPoints"`
	Level             int     `json:"level"`
	PointsToNextLevel int     `json:"pointsToNextLevel"`
	LevelProgress     float64 `json:"levelProgress"`
}

// Progression reports points, level and progress toward the next level.
func Progression(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, progressionResponse{
			TotalPoints:       d.Achievements.TotalPoints(),
			Level:             d.Achievements.Level(),
			PointsToNextLevel: d.Achievements.PointsToNextLevel(),
			LevelProgress:     d.Achievements.LevelProgress(),
		})
	}
}

type statsResponse struct {
	domain.Statistics
	AveragePerDay float64 `json:"averagePerDay"`
}

// Stats summarizes the user's viewing activity.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := d.Selection.Statistics()
		respondJSON(w, http.StatusOK, statsResponse{
			Statistics:    stats,
			AveragePerDay: stats.AveragePerDay(),
		})
	}
}

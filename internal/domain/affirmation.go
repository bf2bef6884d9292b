package domain

import (
	"strings"
	"time"
)

// Affirmation is the canonical content item served by the rotation engine.
//
// Identity and text are immutable after catalog load. IsFavorite, LastShown
// and ShowCount are mutated only by the selection service, which owns them.
//
// An Affirmation is uniquely identified by its ID.
type Affirmation struct {
	// ID is the canonical unique identifier, stable across reloads.
	ID string `json:"id"`

	// Text is the affirmation body. "[NAME]" is substituted by clients.
	Text string `json:"text"`

	// Category is one of the twelve fixed categories.
	Category Category `json:"category"`

	// IsFavorite reflects membership in the user's favorites set.
	IsFavorite bool `json:"isFavorite"`

	// DateAdded is when the item entered the catalog.
	DateAdded time.Time `json:"dateAdded"`

	// LastShown is the last time the item appeared in a drawn batch.
	LastShown *time.Time `json:"lastShown,omitempty"`

	// ShowCount is how many times the item has been shown.
	ShowCount int `json:"showCount"`
}

// DisplayText substitutes the user's name into the affirmation text.
func (a *Affirmation) DisplayText(userName string) string {
	if userName == "" {
		return a.Text
	}
	return strings.ReplaceAll(a.Text, "[NAME]", userName)
}

// MarkShown records one appearance of the item.
func (a *Affirmation) MarkShown(now time.Time) {
	t := now
	a.LastShown = &t
	a.ShowCount++
}

// Statistics summarizes a user's affirmation activity.
type Statistics struct {
	TotalViewed        int       `json:"totalViewed"`
	FavoriteCount      int       `json:"favoriteCount"`
	CurrentStreak      int       `json:"currentStreak"`
	CategoriesExplored int       `json:"categoriesExplored"`
	MostViewedCategory *Category `json:"mostViewedCategory,omitempty"`
}

// AveragePerDay is views per streak day; zero when there is no streak.
func (s Statistics) AveragePerDay() float64 {
	if s.CurrentStreak <= 0 {
		return 0
	}
	return float64(s.TotalViewed) / float64(s.CurrentStreak)
}

// WidgetSnapshot is the minimal cross-process view written for the
// home-screen widget whenever the item of the day changes.
type WidgetSnapshot struct {
	TodayText   string    `json:"todayText"`
	Category    Category  `json:"category"`
	StreakCount int       `json:"streakCount"`
	LastUpdated time.Time `json:"lastUpdated"`
}

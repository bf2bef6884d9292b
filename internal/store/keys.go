package store

// Key names for all persisted state. Every component reads and writes
// through these so the widget process and the app process agree on the
// single source of truth.
const (
	// Deck engine
	KeyDeckOrder  = "glow:deck:order"
	KeyDeckCursor = "glow:deck:cursor"

	// Daily selection
	KeyTodayID        = "glow:today:id"
	KeyTodayBatch     = "glow:today:batch"
	KeyLastRefresh    = "glow:today:last_refresh"
	KeyFavoriteIDs    = "glow:favorites:ids"
	KeyViewedIDs      = "glow:viewed:ids"
	KeyTotalViewed    = "glow:viewed:total"
	KeyPreferredCats  = "glow:preferences:categories"
	KeyWidgetSnapshot = "glow:widget:snapshot"

	// Streak tracker
	KeyStreakCount = "glow:streak:count"
	KeyStreakDate  = "glow:streak:last_date"

	// Achievement engine
	KeyAchievements = "glow:achievements:list"
	KeyTotalPoints  = "glow:achievements:points"
	KeyLevel        = "glow:achievements:level"
)

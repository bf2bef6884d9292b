package events

import (
	"time"

	"github.com/dailyglow/glow/internal/domain"
	"github.com/dailyglow/glow/internal/logger"
)

// Kind identifies an event emitted by the core.
type Kind string

const (
	KindViewed              Kind = "viewed"
	KindFavorited           Kind = "favorited"
	KindUnfavorited         Kind = "unfavorited"
	KindJournalEntryCreated Kind = "journal_entry_created"
	KindGratitudeRecorded   Kind = "gratitude_recorded"
	KindShared              Kind = "shared"
	KindStreakMilestone     Kind = "streak_milestone"
	KindAchievementUnlocked Kind = "achievement_unlocked"
)

// Event is a notification for outside observers (feedback surfaces,
// review prompts). The core never depends on subscribers succeeding.
type Event struct {
	Kind          Kind
	AffirmationID string
	Category      domain.Category
	Count         int // streak count, gratitude items, journal words
	AchievementID string
	At            time.Time
}

// Sink receives events. Publish must not block and must not return errors
// to the caller; delivery is best effort.
type Sink interface {
	Publish(e Event)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Publish(Event) {}

// Fanout delivers each event to every sink in order.
type Fanout []Sink

func (f Fanout) Publish(e Event) {
	for _, s := range f {
		s.Publish(e)
	}
}

// LogSink writes events to the structured log; it stands in for the
// platform feedback layer (haptics, sounds) which is out of scope here.
type LogSink struct {
	Logger logger.Logger
}

func (s *LogSink) Publish(e Event) {
	s.Logger.Debug("event",
		logger.String("kind", string(e.Kind)),
		logger.String("affirmation_id", e.AffirmationID),
		logger.String("achievement_id", e.AchievementID),
		logger.Int("count", e.Count),
	)
}

package achievement

import (
	"context"

	"github.com/dailyglow/glow/internal/events"
)

// Activity trackers: one user action commonly advances several threshold
// achievements at once; each is evaluated independently for unlock.

// TrackStreakDay records the current streak length against every streak
// achievement. A broken streak overwrites progress downward but never
// relocks anything.
func (e *Engine) TrackStreakDay(ctx context.Context, day int) {
	for _, id := range []string{"streak_7", "streak_30", "streak_100", "streak_365"} {
		e.SetProgress(ctx, id, day)
	}
}

// TrackAffirmationViewed advances the read-count achievements by one.
func (e *Engine) TrackAffirmationViewed(ctx context.Context) {
	for _, id := range []string{"affirmations_10", "affirmations_50", "affirmations_100", "affirmations_500"} {
		e.IncrementProgress(ctx, id, 1)
	}
}

// TrackFavoriteSaved advances the favorites achievements by one.
func (e *Engine) TrackFavoriteSaved(ctx context.Context) {
	for _, id := range []string{"favorites_10", "favorites_50"} {
		e.IncrementProgress(ctx, id, 1)
	}
}

// TrackJournalEntry advances the journal achievements for one entry of the
// given word count.
func (e *Engine) TrackJournalEntry(ctx context.Context, wordCount int) {
	for _, id := range []string{"journal_1", "journal_10", "journal_30", "journal_100"} {
		e.IncrementProgress(ctx, id, 1)
	}
	if wordCount > 0 {
		e.IncrementProgress(ctx, "journal_words_1000", wordCount)
	}
	e.events.Publish(events.Event{
		Kind:  events.KindJournalEntryCreated,
		Count: wordCount,
		At:    e.now(),
	})
}

// TrackGratitude advances the gratitude achievements by count items.
func (e *Engine) TrackGratitude(ctx context.Context, count int) {
	for _, id := range []string{"gratitude_10", "gratitude_50", "gratitude_100", "gratitude_365"} {
		e.IncrementProgress(ctx, id, count)
	}
	e.events.Publish(events.Event{
		Kind:  events.KindGratitudeRecorded,
		Count: count,
		At:    e.now(),
	})
}

// TrackShare advances the sharing achievements by one.
func (e *Engine) TrackShare(ctx context.Context) {
	for _, id := range []string{"share_1", "share_10"} {
		e.IncrementProgress(ctx, id, 1)
	}
	e.events.Publish(events.Event{
		Kind: events.KindShared,
		At:   e.now(),
	})
}

// Package streak tracks consecutive-day usage as a small state machine over
// calendar days. At most one mutation happens per day.
package streak

import (
	"context"
	"sync"
	"time"

	"github.com/dailyglow/glow/internal/events"
	"github.com/dailyglow/glow/internal/logger"
	"github.com/dailyglow/glow/internal/store"
)

// milestones are the counts worth celebrating beyond every full week.
var milestones = map[int]bool{7: true, 30: true, 100: true, 365: true}

// Tracker owns the streak counter and its last qualifying date.
type Tracker struct {
	kv     store.KV
	logger logger.Logger
	events events.Sink
	now    func() time.Time

	mu       sync.Mutex
	count    int
	lastDate time.Time // zero until the first check-in
}

// NewTracker creates a streak tracker. now defaults to time.Now.
func NewTracker(kv store.KV, log logger.Logger, sink events.Sink, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	if sink == nil {
		sink = events.Nop{}
	}
	return &Tracker{
		kv:     kv,
		logger: log,
		events: sink,
		now:    now,
	}
}

// Load restores the persisted streak state.
func (t *Tracker) Load(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	count, err := t.kv.GetInt(ctx, store.KeyStreakCount)
	if err != nil {
		t.logger.Warn("failed to load streak count", logger.Error(err))
	}
	lastDate, err := t.kv.GetTime(ctx, store.KeyStreakDate)
	if err != nil {
		t.logger.Warn("failed to load streak date", logger.Error(err))
	}
	t.count = count
	t.lastDate = lastDate
}

// CheckIn records usage for the current calendar day and returns the
// resulting count. Checking in twice on the same day is a no-op; the day
// after the last qualifying day extends the streak; any longer gap resets
// it to 1. Milestone counts are published to the event sink.
func (t *Tracker) CheckIn(ctx context.Context) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	switch {
	case !t.lastDate.IsZero() && sameDay(t.lastDate, now):
		return t.count
	case !t.lastDate.IsZero() && sameDay(t.lastDate, now.AddDate(0, 0, -1)):
		t.count++
	default:
		t.count = 1
	}
	t.lastDate = now
	t.persistLocked(ctx)

	t.logger.Info("streak check-in", logger.Int("count", t.count))

	if milestones[t.count] || t.count%7 == 0 {
		t.events.Publish(events.Event{
			Kind:  events.KindStreakMilestone,
			Count: t.count,
			At:    now,
		})
	}
	return t.count
}

// Count returns the current streak count.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// LastQualifyingDate returns when the streak last advanced.
func (t *Tracker) LastQualifyingDate() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastDate
}

// Reset clears the streak state in memory and in the store.
func (t *Tracker) Reset(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.count = 0
	t.lastDate = time.Time{}
	if err := t.kv.Delete(ctx, store.KeyStreakCount, store.KeyStreakDate); err != nil {
		t.logger.Warn("failed to reset streak state", logger.Error(err))
	}
}

func (t *Tracker) persistLocked(ctx context.Context) {
	if err := t.kv.SetInt(ctx, store.KeyStreakCount, t.count); err != nil {
		t.logger.Warn("failed to persist streak count", logger.Error(err))
	}
	if err := t.kv.SetTime(ctx, store.KeyStreakDate, t.lastDate); err != nil {
		t.logger.Warn("failed to persist streak date", logger.Error(err))
	}
}

// sameDay reports whether a and b fall on the same calendar day in b's
// location.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

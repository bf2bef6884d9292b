// Package achievement tracks progress toward the fixed achievement catalog
// and converts completions into points and levels. Unlocks are one-way and
// award points exactly once.
package achievement

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dailyglow/glow/internal/domain"
	"github.com/dailyglow/glow/internal/events"
	"github.com/dailyglow/glow/internal/logger"
	"github.com/dailyglow/glow/internal/store"
)

// pointsPerLevel is the size of one level band.
const pointsPerLevel = 500

// Engine owns all mutable achievement state. Methods serialize on an
// internal mutex to preserve the unlock and points invariants.
type Engine struct {
	kv     store.KV
	logger logger.Logger
	events events.Sink
	now    func() time.Time

	mu           sync.Mutex
	achievements []*domain.Achievement
	byID         map[string]*domain.Achievement
	totalPoints  int
	level        int
}

// NewEngine creates an achievement engine seeded with the static catalog.
// now defaults to time.Now.
func NewEngine(kv store.KV, log logger.Logger, sink events.Sink, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	if sink == nil {
		sink = events.Nop{}
	}
	e := &Engine{
		kv:     kv,
		logger: log,
		events: sink,
		now:    now,
		level:  1,
	}
	e.install(domain.AchievementDefinitions())
	return e
}

// Load restores persisted progress. Unknown persisted ids are dropped and
// catalog entries missing from the persisted list keep their defaults, so
// catalog evolution never loses or corrupts state.
func (e *Engine) Load(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw, err := e.kv.GetString(ctx, store.KeyAchievements)
	if err != nil {
		e.logger.Warn("failed to load achievements", logger.Error(err))
	}
	if raw != "" {
		var saved []*domain.Achievement
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			e.logger.Warn("failed to decode achievements, keeping defaults",
				logger.Error(err))
		} else {
			for _, s := range saved {
				a, ok := e.byID[s.ID]
				if !ok {
					continue
				}
				a.Progress = s.Progress
				a.IsUnlocked = s.IsUnlocked
				a.UnlockedDate = s.UnlockedDate
			}
		}
	}

	points, err := e.kv.GetInt(ctx, store.KeyTotalPoints)
	if err != nil {
		e.logger.Warn("failed to load points", logger.Error(err))
	}
	e.totalPoints = points
	e.level = levelFor(points)
}

// SetProgress overwrites the progress of one achievement. A value at or
// above the requirement unlocks it; repeated calls never re-award points.
// Unknown ids are ignored.
func (e *Engine) SetProgress(ctx context.Context, id string, value int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.byID[id]
	if !ok {
		return
	}
	a.Progress = value
	e.maybeUnlockLocked(a)
	e.persistLocked(ctx)
}

// IncrementProgress adds amount to one achievement's progress, with the
// same unlock semantics as SetProgress. Unknown ids are ignored.
func (e *Engine) IncrementProgress(ctx context.Context, id string, amount int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.byID[id]
	if !ok {
		return
	}
	a.Progress += amount
	e.maybeUnlockLocked(a)
	e.persistLocked(ctx)
}

// Achievements returns a snapshot of the catalog with current progress.
func (e *Engine) Achievements() []domain.Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.Achievement, 0, len(e.achievements))
	for _, a := range e.achievements {
		out = append(out, *a)
	}
	return out
}

// UnlockedCount returns how many achievements have been unlocked.
func (e *Engine) UnlockedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for _, a := range e.achievements {
		if a.IsUnlocked {
			count++
		}
	}
	return count
}

// TotalPoints returns the accumulated reward points.
func (e *Engine) TotalPoints() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalPoints
}

// Level returns the current level: one new level per 500 points.
func (e *Engine) Level() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level
}

// PointsToNextLevel returns how many points remain until the next level.
func (e *Engine) PointsToNextLevel() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level*pointsPerLevel - e.totalPoints
}

// LevelProgress returns progress through the current level band in [0,1].
func (e *Engine) LevelProgress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	earned := e.totalPoints - (e.level-1)*pointsPerLevel
	return float64(earned) / float64(pointsPerLevel)
}

// Reset clears all progress, points and level back to the pristine catalog.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.install(domain.AchievementDefinitions())
	e.totalPoints = 0
	e.level = 1
	if err := e.kv.Delete(ctx, store.KeyAchievements, store.KeyTotalPoints, store.KeyLevel); err != nil {
		e.logger.Warn("failed to reset achievement state", logger.Error(err))
	}
}

func (e *Engine) install(defs []*domain.Achievement) {
	e.achievements = defs
	e.byID = make(map[string]*domain.Achievement, len(defs))
	for _, a := range defs {
		e.byID[a.ID] = a
	}
}

// maybeUnlockLocked performs the one-way unlock transition when progress
// has reached the requirement. Already-unlocked achievements are never
// touched again, so points are awarded exactly once.
func (e *Engine) maybeUnlockLocked(a *domain.Achievement) {
	if a.IsUnlocked || !a.IsComplete() {
		return
	}

	now := e.now()
	a.IsUnlocked = true
	a.UnlockedDate = &now
	e.totalPoints += a.RewardPoints
	e.level = levelFor(e.totalPoints)

	e.logger.Info("achievement unlocked",
		logger.String("id", a.ID),
		logger.Int("points", a.RewardPoints),
		logger.Int("total_points", e.totalPoints),
		logger.Int("level", e.level))

	e.events.Publish(events.Event{
		Kind:          events.KindAchievementUnlocked,
		AchievementID: a.ID,
		At:            now,
	})
}

func (e *Engine) persistLocked(ctx context.Context) {
	data, err := json.Marshal(e.achievements)
	if err != nil {
		e.logger.Warn("failed to encode achievements", logger.Error(err))
	} else if err := e.kv.SetString(ctx, store.KeyAchievements, string(data)); err != nil {
		e.logger.Warn("failed to persist achievements", logger.Error(err))
	}
	if err := e.kv.SetInt(ctx, store.KeyTotalPoints, e.totalPoints); err != nil {
		e.logger.Warn("failed to persist points", logger.Error(err))
	}
	if err := e.kv.SetInt(ctx, store.KeyLevel, e.level); err != nil {
		e.logger.Warn("failed to persist level", logger.Error(err))
	}
}

// levelFor computes the level for a points total: floor(points/500) + 1.
func levelFor(points int) int {
	if points < 0 {
		return 1
	}
	return points/pointsPerLevel + 1
}

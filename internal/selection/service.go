// Package selection orchestrates daily content delivery: it is the sole
// caller of the deck engine and owns favorites, view history, search,
// recommendations and the widget snapshot.
package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/dailyglow/glow/internal/achievement"
	"github.com/dailyglow/glow/internal/catalog"
	"github.com/dailyglow/glow/internal/deck"
	"github.com/dailyglow/glow/internal/domain"
	"github.com/dailyglow/glow/internal/events"
	"github.com/dailyglow/glow/internal/logger"
	"github.com/dailyglow/glow/internal/store"
	"github.com/dailyglow/glow/internal/streak"
)

const (
	// batchSize is how many cards one daily refresh draws.
	batchSize = 10
	// recentLimit caps the most-recently-viewed list.
	recentLimit = 20
	// moodPicks is how many mood-based items a recommendation blends in.
	moodPicks = 3
)

// Service is the daily selection service. Public methods serialize on an
// internal mutex; the service is the single owner of favorites, the viewed
// set and the item of the day.
type Service struct {
	catalog      *catalog.Index
	deck         *deck.Engine
	kv           store.KV
	streak       *streak.Tracker
	achievements *achievement.Engine
	events       events.Sink
	logger       logger.Logger
	now          func() time.Time

	mu          sync.Mutex
	favoriteIDs map[string]struct{}
	viewedIDs   map[string]struct{}
	recent      []*domain.Affirmation
	totalViewed int
	preferred   []domain.Category
	today       *domain.Affirmation
	todayBatch  []*domain.Affirmation
	lastRefresh time.Time
}

// NewService wires the selection service. now defaults to time.Now.
func NewService(
	cat *catalog.Index,
	deckEngine *deck.Engine,
	kv store.KV,
	streakTracker *streak.Tracker,
	achievements *achievement.Engine,
	sink events.Sink,
	log logger.Logger,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	if sink == nil {
		sink = events.Nop{}
	}
	return &Service{
		catalog:      cat,
		deck:         deckEngine,
		kv:           kv,
		streak:       streakTracker,
		achievements: achievements,
		events:       sink,
		logger:       log,
		now:          now,
		favoriteIDs:  make(map[string]struct{}),
		viewedIDs:    make(map[string]struct{}),
	}
}

// Load restores persisted user data and applies favorite flags to the
// catalog. Call once after the catalog is loaded.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favIDs, err := s.kv.GetStrings(ctx, store.KeyFavoriteIDs)
	if err != nil {
		s.logger.Warn("failed to load favorites", logger.Error(err))
	}
	s.favoriteIDs = make(map[string]struct{}, len(favIDs))
	for _, id := range favIDs {
		s.favoriteIDs[id] = struct{}{}
		if item, ok := s.catalog.Get(id); ok {
			item.IsFavorite = true
		}
	}

	viewedIDs, err := s.kv.GetStrings(ctx, store.KeyViewedIDs)
	if err != nil {
		s.logger.Warn("failed to load viewed ids", logger.Error(err))
	}
	s.viewedIDs = make(map[string]struct{}, len(viewedIDs))
	for _, id := range viewedIDs {
		s.viewedIDs[id] = struct{}{}
	}

	total, err := s.kv.GetInt(ctx, store.KeyTotalViewed)
	if err != nil {
		s.logger.Warn("failed to load view counter", logger.Error(err))
	}
	s.totalViewed = total

	lastRefresh, err := s.kv.GetTime(ctx, store.KeyLastRefresh)
	if err != nil {
		s.logger.Warn("failed to load last refresh", logger.Error(err))
	}
	s.lastRefresh = lastRefresh

	rawCats, err := s.kv.GetStrings(ctx, store.KeyPreferredCats)
	if err != nil {
		s.logger.Warn("failed to load preferred categories", logger.Error(err))
	}
	s.preferred = s.preferred[:0]
	for _, raw := range rawCats {
		if c, err := domain.ParseCategory(raw); err == nil {
			s.preferred = append(s.preferred, c)
		}
	}

	s.logger.Info("selection state loaded",
		logger.Int("favorites", len(s.favoriteIDs)),
		logger.Int("viewed", len(s.viewedIDs)),
		logger.Int("preferred_categories", len(s.preferred)))
}

// OnCatalogReplaced re-binds selection state to the catalog's current
// items after a library reload. Replace installs fresh pointers, so
// favorite flags must be re-applied and the cached day selection and
// recent list re-resolved by id; ids that no longer resolve are dropped.
// When the item of the day itself is gone the cached day is discarded and
// the next refresh draws fresh.
func (s *Service) OnCatalogReplaced(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.favoriteIDs {
		if item, ok := s.catalog.Get(id); ok {
			item.IsFavorite = true
		}
	}

	if s.today != nil {
		if item, ok := s.catalog.Get(s.today.ID); ok {
			s.today = item
			batch := make([]*domain.Affirmation, 0, len(s.todayBatch))
			for _, it := range s.todayBatch {
				if resolved, ok := s.catalog.Get(it.ID); ok {
					batch = append(batch, resolved)
				}
			}
			s.todayBatch = batch
		} else {
			s.today = nil
			s.todayBatch = nil
		}
	}

	recent := make([]*domain.Affirmation, 0, len(s.recent))
	for _, it := range s.recent {
		if item, ok := s.catalog.Get(it.ID); ok {
			recent = append(recent, item)
		}
	}
	s.recent = recent

	s.logger.Debug("selection state rebound to reloaded catalog",
		logger.Int("favorites", len(s.favoriteIDs)),
		logger.Int("recent", len(s.recent)))
}

// OnSessionStart is the explicit entry point the host layer calls when a
// session begins (app foreground, widget wake, day rollover). It advances
// the streak, feeds it to the achievement engine and makes sure an item of
// the day exists.
func (s *Service) OnSessionStart(ctx context.Context) *domain.Affirmation {
	count := s.streak.CheckIn(ctx)
	s.achievements.TrackStreakDay(ctx, count)
	s.RefreshDaily(ctx)
	return s.Today()
}

// RefreshDaily returns today's batch, drawing a fresh one only when the
// calendar day has changed. Within one day repeated calls return the same
// cached batch and item of the day, unless an explicit reshuffle happened.
func (s *Service) RefreshDaily(ctx context.Context) []*domain.Affirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	eligible := s.catalog.Eligible(s.preferred)
	s.deck.EnsureDeck(ctx, eligible)

	if batch := s.cachedTodayLocked(ctx); batch != nil {
		return batch
	}
	return s.generateLocked(ctx)
}

// Reshuffle discards the current deck order at the user's request, draws a
// fresh batch and makes its first card the new item of the day.
func (s *Service) Reshuffle(ctx context.Context) []*domain.Affirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	eligible := s.catalog.Eligible(s.preferred)
	s.deck.EnsureDeck(ctx, eligible)
	s.deck.ForceReshuffle(ctx)
	return s.generateLocked(ctx)
}

// RecordView registers that the user viewed an item: it joins the
// ever-viewed set, the view counter increments and the item moves to the
// front of the recent list. Unknown ids are ignored.
func (s *Service) RecordView(ctx context.Context, id string) {
	s.mu.Lock()

	item, ok := s.catalog.Get(id)
	if !ok {
		s.mu.Unlock()
		return
	}

	now := s.now()
	s.viewedIDs[id] = struct{}{}
	s.totalViewed++
	item.MarkShown(now)
	s.pushRecentLocked(item)
	s.persistViewsLocked(ctx)
	s.mu.Unlock()

	s.events.Publish(events.Event{
		Kind:          events.KindViewed,
		AffirmationID: id,
		Category:      item.Category,
		At:            now,
	})
	s.achievements.TrackAffirmationViewed(ctx)
}

// ToggleFavorite flips an item's membership in the favorites set and
// returns the new state. Unknown ids report false without side effects.
func (s *Service) ToggleFavorite(ctx context.Context, id string) bool {
	s.mu.Lock()

	item, ok := s.catalog.Get(id)
	if !ok {
		s.mu.Unlock()
		return false
	}

	now := s.now()
	_, wasFavorite := s.favoriteIDs[id]
	kind := events.KindFavorited
	if wasFavorite {
		delete(s.favoriteIDs, id)
		item.IsFavorite = false
		kind = events.KindUnfavorited
	} else {
		s.favoriteIDs[id] = struct{}{}
		item.IsFavorite = true
	}
	s.persistFavoritesLocked(ctx)
	s.mu.Unlock()

	s.events.Publish(events.Event{
		Kind:          kind,
		AffirmationID: id,
		Category:      item.Category,
		At:            now,
	})
	if !wasFavorite {
		s.achievements.TrackFavoriteSaved(ctx)
	}
	return !wasFavorite
}

// IsFavorite reports whether an item is currently favorited.
func (s *Service) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favoriteIDs[id]
	return ok
}

// Favorites returns all favorited items in catalog order.
func (s *Service) Favorites() []*domain.Affirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Affirmation, 0, len(s.favoriteIDs))
	for _, item := range s.catalog.All() {
		if _, ok := s.favoriteIDs[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out
}

// Recent returns the most-recently-viewed list, newest first.
func (s *Service) Recent() []*domain.Affirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Affirmation, len(s.recent))
	copy(out, s.recent)
	return out
}

// Today returns the current item of the day, nil when none exists (empty
// eligible set).
func (s *Service) Today() *domain.Affirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.today
}

// TodayBatch returns the current day's drawn batch.
func (s *Service) TodayBatch() []*domain.Affirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Affirmation, len(s.todayBatch))
	copy(out, s.todayBatch)
	return out
}

// Search matches the query case-insensitively against item text and
// category names. An empty query yields no results.
func (s *Service) Search(query string) []*domain.Affirmation {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var out []*domain.Affirmation
	for _, item := range s.catalog.All() {
		if strings.Contains(strings.ToLower(item.Text), query) ||
			strings.Contains(strings.ToLower(string(item.Category)), query) {
			out = append(out, item)
		}
	}
	return out
}

// Recommend blends items from the current time-of-day mood's categories
// with one item per favorited category, deduplicated and truncated.
func (s *Service) Recommend(limit int) []*domain.Affirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		return nil
	}

	mood := domain.MoodForHour(s.now().Hour())
	moodCats := make(map[domain.Category]bool)
	for _, c := range mood.SuggestedCategories() {
		moodCats[c] = true
	}

	var pool []*domain.Affirmation
	for _, item := range s.catalog.All() {
		if moodCats[item.Category] {
			pool = append(pool, item)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	seen := make(map[string]bool)
	var out []*domain.Affirmation
	for _, item := range pool {
		if len(out) == moodPicks {
			break
		}
		seen[item.ID] = true
		out = append(out, item)
	}

	// One item per favorited category, in stable category order.
	favCats := make(map[domain.Category]bool)
	for id := range s.favoriteIDs {
		if item, ok := s.catalog.Get(id); ok {
			favCats[item.Category] = true
		}
	}
	for _, c := range domain.AllCategories {
		if !favCats[c] {
			continue
		}
		for _, item := range s.catalog.ByCategory(c) {
			if !seen[item.ID] {
				seen[item.ID] = true
				out = append(out, item)
				break
			}
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PreferredCategories returns the active category filter; empty means all.
func (s *Service) PreferredCategories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Category, len(s.preferred))
	copy(out, s.preferred)
	return out
}

// SetPreferredCategories replaces the category filter. The deck reconciles
// against the new eligible set on the next refresh.
func (s *Service) SetPreferredCategories(ctx context.Context, cats []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.preferred = make([]domain.Category, len(cats))
	copy(s.preferred, cats)

	raw := make([]string, 0, len(cats))
	for _, c := range cats {
		raw = append(raw, string(c))
	}
	if err := s.kv.SetStrings(ctx, store.KeyPreferredCats, raw); err != nil {
		s.logger.Warn("failed to persist preferred categories", logger.Error(err))
	}
}

// Statistics summarizes the user's activity.
func (s *Service) Statistics() domain.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[domain.Category]int)
	for id := range s.viewedIDs {
		if item, ok := s.catalog.Get(id); ok {
			counts[item.Category]++
		}
	}

	var most *domain.Category
	best := 0
	for _, c := range domain.AllCategories {
		if counts[c] > best {
			best = counts[c]
			cat := c
			most = &cat
		}
	}

	return domain.Statistics{
		TotalViewed:        s.totalViewed,
		FavoriteCount:      len(s.favoriteIDs),
		CurrentStreak:      s.streak.Count(),
		CategoriesExplored: len(counts),
		MostViewedCategory: most,
	}
}

// ExportFavorites renders the favorites as shareable plain text.
func (s *Service) ExportFavorites() string {
	var b strings.Builder
	b.WriteString("My Daily Glow Favorite Affirmations\n")
	b.WriteString(fmt.Sprintf("Generated on: %s\n\n", s.now().Format("Jan 2, 2006")))

	for i, item := range s.Favorites() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(item.Text)
		b.WriteString("\n- ")
		b.WriteString(string(item.Category))
	}
	return b.String()
}

// Reset wipes all selection-owned state and draws a fresh day.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()

	for id := range s.favoriteIDs {
		if item, ok := s.catalog.Get(id); ok {
			item.IsFavorite = false
		}
	}
	s.favoriteIDs = make(map[string]struct{})
	s.viewedIDs = make(map[string]struct{})
	s.recent = nil
	s.totalViewed = 0
	s.today = nil
	s.todayBatch = nil
	s.lastRefresh = time.Time{}

	if err := s.kv.Delete(ctx,
		store.KeyTodayID, store.KeyTodayBatch, store.KeyLastRefresh,
		store.KeyFavoriteIDs, store.KeyViewedIDs, store.KeyTotalViewed,
		store.KeyWidgetSnapshot,
	); err != nil {
		s.logger.Warn("failed to reset selection state", logger.Error(err))
	}
	s.mu.Unlock()

	s.Reshuffle(ctx)
}

// cachedTodayLocked returns the same-day batch when the last refresh falls
// on the current calendar day and both the persisted item of the day and
// batch still resolve against the catalog. Any miss falls through to a
// fresh draw.
func (s *Service) cachedTodayLocked(ctx context.Context) []*domain.Affirmation {
	if s.lastRefresh.IsZero() || !sameDay(s.lastRefresh, s.now()) {
		return nil
	}

	if s.today != nil && len(s.todayBatch) > 0 {
		// The catalog may have been replaced since the draw; serve the
		// cache only while the item of the day still resolves.
		if _, ok := s.catalog.Get(s.today.ID); ok {
			return s.todayBatch
		}
		s.today = nil
		s.todayBatch = nil
	}

	// Process restarted mid-day: restore today's selection from the store.
	todayID, err := s.kv.GetString(ctx, store.KeyTodayID)
	if err != nil {
		s.logger.Warn("failed to load today id", logger.Error(err))
		return nil
	}
	item, ok := s.catalog.Get(todayID)
	if !ok {
		return nil
	}

	batchIDs, err := s.kv.GetStrings(ctx, store.KeyTodayBatch)
	if err != nil {
		s.logger.Warn("failed to load today batch", logger.Error(err))
		return nil
	}
	batch := make([]*domain.Affirmation, 0, len(batchIDs))
	for _, id := range batchIDs {
		if it, ok := s.catalog.Get(id); ok {
			batch = append(batch, it)
		}
	}
	if len(batch) == 0 {
		return nil
	}

	s.today = item
	s.todayBatch = batch
	s.logger.Info("restored today's batch",
		logger.String("today_id", todayID),
		logger.Int("count", len(batch)))
	return batch
}

// generateLocked draws a new batch and promotes its first card to item of
// the day. Caller must hold s.mu and have ensured the deck.
func (s *Service) generateLocked(ctx context.Context) []*domain.Affirmation {
	batch := s.deck.DrawBatch(ctx, batchSize)
	if len(batch) == 0 {
		s.today = nil
		s.todayBatch = nil
		s.logger.Warn("no eligible affirmations for daily refresh")
		return nil
	}

	now := s.now()
	s.todayBatch = batch
	s.today = batch[0]
	s.lastRefresh = now
	s.pushRecentLocked(s.today)

	if err := s.kv.SetString(ctx, store.KeyTodayID, s.today.ID); err != nil {
		s.logger.Warn("failed to persist today id", logger.Error(err))
	}
	ids := make([]string, 0, len(batch))
	for _, item := range batch {
		ids = append(ids, item.ID)
	}
	if err := s.kv.SetStrings(ctx, store.KeyTodayBatch, ids); err != nil {
		s.logger.Warn("failed to persist today batch", logger.Error(err))
	}
	if err := s.kv.SetTime(ctx, store.KeyLastRefresh, now); err != nil {
		s.logger.Warn("failed to persist last refresh", logger.Error(err))
	}

	s.writeSnapshotLocked(ctx)

	s.logger.Info("daily batch drawn",
		logger.String("today_id", s.today.ID),
		logger.Int("count", len(batch)))
	return batch
}

// writeSnapshotLocked publishes the minimal cross-process widget view.
func (s *Service) writeSnapshotLocked(ctx context.Context) {
	if s.today == nil {
		return
	}
	snap := domain.WidgetSnapshot{
		TodayText:   s.today.Text,
		Category:    s.today.Category,
		StreakCount: s.streak.Count(),
		LastUpdated: s.now(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("failed to encode widget snapshot", logger.Error(err))
		return
	}
	if err := s.kv.SetString(ctx, store.KeyWidgetSnapshot, string(data)); err != nil {
		s.logger.Warn("failed to persist widget snapshot", logger.Error(err))
	}
}

// pushRecentLocked moves an item to the front of the recent list, dedup by
// id, capped at recentLimit.
func (s *Service) pushRecentLocked(item *domain.Affirmation) {
	kept := make([]*domain.Affirmation, 0, len(s.recent)+1)
	kept = append(kept, item)
	for _, r := range s.recent {
		if r.ID == item.ID {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) > recentLimit {
		kept = kept[:recentLimit]
	}
	s.recent = kept
}

func (s *Service) persistViewsLocked(ctx context.Context) {
	ids := make([]string, 0, len(s.viewedIDs))
	for id := range s.viewedIDs {
		ids = append(ids, id)
	}
	if err := s.kv.SetStrings(ctx, store.KeyViewedIDs, ids); err != nil {
		s.logger.Warn("failed to persist viewed ids", logger.Error(err))
	}
	if err := s.kv.SetInt(ctx, store.KeyTotalViewed, s.totalViewed); err != nil {
		s.logger.Warn("failed to persist view counter", logger.Error(err))
	}
}

func (s *Service) persistFavoritesLocked(ctx context.Context) {
	ids := make([]string, 0, len(s.favoriteIDs))
	for id := range s.favoriteIDs {
		ids = append(ids, id)
	}
	if err := s.kv.SetStrings(ctx, store.KeyFavoriteIDs, ids); err != nil {
		s.logger.Warn("failed to persist favorites", logger.Error(err))
	}
}

// sameDay reports whether a and b fall on the same calendar day in b's
// location.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

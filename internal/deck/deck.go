// Package deck implements the no-repeat content rotation engine: a
// persisted, resumable shuffle-without-replacement cursor over the eligible
// catalog subset. No item repeats until every eligible item has been drawn
// exactly once, then the deck reshuffles and the cycle restarts.
package deck

import (
	"context"
	"math/rand"
	"sync"

	"github.com/dailyglow/glow/internal/domain"
	"github.com/dailyglow/glow/internal/logger"
	"github.com/dailyglow/glow/internal/store"
)

// DefaultMinValidRatio is the restore heuristic: if fewer than this share
// of the eligible set survives restoring the persisted ordering, the state
// is treated as stale or corrupt and the deck is rebuilt from scratch.
const DefaultMinValidRatio = 0.5

// Engine owns the deck. All methods serialize on an internal mutex; the
// ordering and cursor invariants do not survive concurrent mutation.
type Engine struct {
	kv            store.KV
	logger        logger.Logger
	minValidRatio float64

	mu          sync.Mutex
	ordering    []string // permutation of eligible ids
	cursor      int      // next draw position, 0 <= cursor <= len(ordering)
	eligible    map[string]*domain.Affirmation
	eligibleIDs []string
}

// NewEngine creates a deck engine. minValidRatio <= 0 selects the default.
func NewEngine(kv store.KV, log logger.Logger, minValidRatio float64) *Engine {
	if minValidRatio <= 0 {
		minValidRatio = DefaultMinValidRatio
	}
	return &Engine{
		kv:            kv,
		logger:        log,
		minValidRatio: minValidRatio,
	}
}

// EnsureDeck points the engine at the current eligible set and makes sure a
// usable deck exists for it. On first call it restores the persisted
// ordering and cursor, dropping ids that no longer resolve; if too few
// survive the deck is rebuilt as a fresh random permutation. On later calls
// it reconciles the in-memory deck against the (possibly changed) eligible
// set the same way.
func (e *Engine) EnsureDeck(ctx context.Context, eligible []*domain.Affirmation) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.eligible = make(map[string]*domain.Affirmation, len(eligible))
	e.eligibleIDs = make([]string, 0, len(eligible))
	for _, item := range eligible {
		if _, dup := e.eligible[item.ID]; dup {
			continue
		}
		e.eligible[item.ID] = item
		e.eligibleIDs = append(e.eligibleIDs, item.ID)
	}

	if len(e.ordering) == 0 {
		e.restoreOrCreateLocked(ctx)
		return
	}
	e.reconcileLocked(ctx)
}

// DrawBatch returns up to n items from the deck, resolved against the
// eligible set, and advances the cursor. When the cursor has reached the
// end of the deck a fresh permutation is generated first; that is the
// no-repeat guarantee boundary. The deck state is persisted after every
// draw. An empty eligible set yields an empty batch, never an error.
func (e *Engine) DrawBatch(ctx context.Context, n int) []*domain.Affirmation {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.eligibleIDs) == 0 || n <= 0 {
		return nil
	}

	if e.cursor >= len(e.ordering) {
		e.logger.Info("deck exhausted, reshuffling",
			logger.Int("deck_size", len(e.ordering)))
		e.reshuffleLocked()
	}

	end := e.cursor + n
	if end > len(e.ordering) {
		end = len(e.ordering)
	}

	batch := make([]*domain.Affirmation, 0, end-e.cursor)
	for _, id := range e.ordering[e.cursor:end] {
		// Reconciliation keeps ordering resolvable; guard anyway so a
		// missing id degrades to a shorter batch instead of a crash.
		item, ok := e.eligible[id]
		if !ok {
			continue
		}
		batch = append(batch, item)
	}

	e.cursor = end
	e.persistLocked(ctx)

	e.logger.Debug("drew batch from deck",
		logger.Int("count", len(batch)),
		logger.Int("cursor", e.cursor),
		logger.Int("deck_size", len(e.ordering)))

	return batch
}

// ForceReshuffle regenerates the deck as a new random permutation of the
// current eligible set and resets the cursor. Used for explicit refresh.
func (e *Engine) ForceReshuffle(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reshuffleLocked()
	e.persistLocked(ctx)
	e.logger.Info("deck reshuffled on request",
		logger.Int("deck_size", len(e.ordering)))
}

// Size returns the number of ids in the current deck.
func (e *Engine) Size() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.ordering)
}

// Remaining returns how many cards are left before the reshuffle boundary.
func (e *Engine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.ordering) - e.cursor
}

// restoreOrCreateLocked loads the persisted (ordering, cursor) pair, or
// builds a fresh deck when nothing usable is persisted.
func (e *Engine) restoreOrCreateLocked(ctx context.Context) {
	savedIDs, err := e.kv.GetStrings(ctx, store.KeyDeckOrder)
	if err != nil {
		e.logger.Warn("failed to load persisted deck", logger.Error(err))
	}
	if len(savedIDs) == 0 {
		e.reshuffleLocked()
		e.persistLocked(ctx)
		e.logger.Info("created fresh deck",
			logger.Int("deck_size", len(e.ordering)))
		return
	}

	cursor, err := e.kv.GetInt(ctx, store.KeyDeckCursor)
	if err != nil {
		e.logger.Warn("failed to load deck cursor", logger.Error(err))
		cursor = 0
	}

	e.ordering = savedIDs
	e.cursor = cursor
	e.reconcileLocked(ctx)

	e.logger.Info("restored deck",
		logger.Int("cursor", e.cursor),
		logger.Int("deck_size", len(e.ordering)))
}

// reconcileLocked drops ids that no longer resolve against the eligible set
// without otherwise reordering, shifting the cursor to stay on the same
// card. If fewer than minValidRatio of the eligible set survives, the state
// is considered stale or corrupt and the deck is rebuilt silently.
func (e *Engine) reconcileLocked(ctx context.Context) {
	kept := e.ordering[:0]
	cursor := e.cursor
	for i, id := range e.ordering {
		if _, ok := e.eligible[id]; !ok {
			if i < e.cursor {
				cursor--
			}
			continue
		}
		kept = append(kept, id)
	}
	e.ordering = kept
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(e.ordering) {
		cursor = len(e.ordering)
	}
	e.cursor = cursor

	minValid := int(float64(len(e.eligibleIDs)) * e.minValidRatio)
	if len(e.ordering) < minValid {
		e.logger.Warn("persisted deck stale, rebuilding",
			logger.Int("resolved", len(e.ordering)),
			logger.Int("eligible", len(e.eligibleIDs)))
		e.reshuffleLocked()
		e.persistLocked(ctx)
	}
}

// reshuffleLocked replaces the ordering with a uniform random permutation
// of the eligible ids (Fisher-Yates) and resets the cursor.
func (e *Engine) reshuffleLocked() {
	ordering := make([]string, len(e.eligibleIDs))
	copy(ordering, e.eligibleIDs)
	rand.Shuffle(len(ordering), func(i, j int) {
		ordering[i], ordering[j] = ordering[j], ordering[i]
	})
	e.ordering = ordering
	e.cursor = 0
}

// persistLocked writes the (ordering, cursor) pair. Failures are logged and
// swallowed: in-memory state stays authoritative and the next successful
// write re-syncs the store.
func (e *Engine) persistLocked(ctx context.Context) {
	if err := e.kv.SetStrings(ctx, store.KeyDeckOrder, e.ordering); err != nil {
		e.logger.Warn("failed to persist deck ordering", logger.Error(err))
	}
	if err := e.kv.SetInt(ctx, store.KeyDeckCursor, e.cursor); err != nil {
		e.logger.Warn("failed to persist deck cursor", logger.Error(err))
	}
}

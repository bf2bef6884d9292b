package deck

import (
	"context"
	"fmt"
	"testing"

	"github.com/dailyglow/glow/internal/domain"
	"github.com/dailyglow/glow/internal/logger"
	"github.com/dailyglow/glow/internal/store"
	"github.com/dailyglow/glow/internal/store/memory"
)

func testLogger() logger.Logger {
	return logger.New("error", false)
}

func makeItems(n int) []*domain.Affirmation {
	items := make([]*domain.Affirmation, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, &domain.Affirmation{
			ID:       fmt.Sprintf("item-%02d", i),
			Text:     fmt.Sprintf("affirmation %d", i),
			Category: domain.CategoryJoy,
		})
	}
	return items
}

func ids(items []*domain.Affirmation) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestDrawBatchNoRepeatWithinCycle(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(memory.NewStore(), testLogger(), 0)
	items := makeItems(12)
	engine.EnsureDeck(ctx, items)

	first := engine.DrawBatch(ctx, 10)
	if len(first) != 10 {
		t.Fatalf("first DrawBatch(10) returned %v items, want 10", len(first))
	}

	second := engine.DrawBatch(ctx, 10)
	if len(second) != 2 {
		t.Fatalf("second DrawBatch(10) returned %v items, want remaining 2", len(second))
	}

	seen := make(map[string]bool)
	for _, item := range append(first, second...) {
		if seen[item.ID] {
			t.Errorf("item %s repeated within one cycle", item.ID)
		}
		seen[item.ID] = true
	}
	if len(seen) != 12 {
		t.Errorf("one full cycle covered %v items, want all 12", len(seen))
	}
}

func TestCycleCompletionTriggersReshuffle(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(memory.NewStore(), testLogger(), 0)
	items := makeItems(12)
	engine.EnsureDeck(ctx, items)

	engine.DrawBatch(ctx, 12)
	if got := engine.Remaining(); got != 0 {
		t.Fatalf("Remaining() = %v after full cycle, want 0", got)
	}

	// Crossing the boundary starts a fresh full cycle.
	next := engine.DrawBatch(ctx, 10)
	if len(next) != 10 {
		t.Fatalf("DrawBatch(10) after boundary returned %v items, want 10", len(next))
	}
	if got := engine.Remaining(); got != 2 {
		t.Errorf("Remaining() = %v after boundary draw, want 2", got)
	}
}

func TestDrawBatchEmptyEligibleSet(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(memory.NewStore(), testLogger(), 0)
	engine.EnsureDeck(ctx, nil)

	if batch := engine.DrawBatch(ctx, 10); len(batch) != 0 {
		t.Errorf("DrawBatch() with empty eligible set returned %v items, want 0", len(batch))
	}
}

func TestRestoreKeepsPersistedOrder(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	items := makeItems(10)

	// Persisted deck holds 3 stale ids out of 10 eligible (70% valid):
	// restore path must be used, not a rebuild.
	persisted := []string{
		"stale-a", "item-03", "item-01", "stale-b", "item-07",
		"item-00", "item-09", "stale-c", "item-05", "item-02",
	}
	if err := kv.SetStrings(ctx, store.KeyDeckOrder, persisted); err != nil {
		t.Fatal(err)
	}
	if err := kv.SetInt(ctx, store.KeyDeckCursor, 0); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(kv, testLogger(), 0)
	engine.EnsureDeck(ctx, items)

	got := ids(engine.DrawBatch(ctx, 10))
	want := []string{"item-03", "item-01", "item-07", "item-00", "item-09", "item-05", "item-02"}
	if len(got) != len(want) {
		t.Fatalf("restored deck drew %v items, want %v", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("restored order[%d] = %s, want %s (must not reorder)", i, got[i], want[i])
		}
	}
}

func TestRestoreCursorSkipsDroppedIDs(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	items := makeItems(10)

	persisted := []string{"stale-a", "item-00", "item-01", "item-02", "item-03",
		"item-04", "item-05", "item-06", "item-07", "item-08"}
	if err := kv.SetStrings(ctx, store.KeyDeckOrder, persisted); err != nil {
		t.Fatal(err)
	}
	// Cursor sat past the stale id and two real draws.
	if err := kv.SetInt(ctx, store.KeyDeckCursor, 3); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(kv, testLogger(), 0)
	engine.EnsureDeck(ctx, items)

	got := ids(engine.DrawBatch(ctx, 2))
	want := []string{"item-02", "item-03"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("draw after cursor shift[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestRebuildWhenTooFewIDsResolve(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	items := makeItems(10)

	// Only 4 of 10 eligible ids resolve: below the half threshold.
	persisted := []string{"gone-a", "gone-b", "gone-c", "gone-d", "gone-e",
		"gone-f", "item-00", "item-01", "item-02", "item-03"}
	if err := kv.SetStrings(ctx, store.KeyDeckOrder, persisted); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(kv, testLogger(), 0)
	engine.EnsureDeck(ctx, items)

	if got := engine.Size(); got != 10 {
		t.Errorf("deck size after rebuild = %v, want full eligible set of 10", got)
	}
	if got := engine.Remaining(); got != 10 {
		t.Errorf("Remaining() after rebuild = %v, want 10", got)
	}
}

func TestForceReshufflePersistsState(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	engine := NewEngine(kv, testLogger(), 0)
	items := makeItems(8)
	engine.EnsureDeck(ctx, items)
	engine.DrawBatch(ctx, 5)

	engine.ForceReshuffle(ctx)

	order, err := kv.GetStrings(ctx, store.KeyDeckOrder)
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != 8 {
		t.Errorf("persisted ordering has %v ids, want 8", len(order))
	}
	cursor, err := kv.GetInt(ctx, store.KeyDeckCursor)
	if err != nil {
		t.Fatal(err)
	}
	if cursor != 0 {
		t.Errorf("persisted cursor = %v after reshuffle, want 0", cursor)
	}
}

func TestCursorSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	items := makeItems(12)

	engine := NewEngine(kv, testLogger(), 0)
	engine.EnsureDeck(ctx, items)
	first := engine.DrawBatch(ctx, 5)

	// Simulate process restart: a new engine over the same store.
	restarted := NewEngine(kv, testLogger(), 0)
	restarted.EnsureDeck(ctx, items)
	rest := restarted.DrawBatch(ctx, 7)

	seen := make(map[string]bool)
	for _, item := range append(first, rest...) {
		if seen[item.ID] {
			t.Errorf("item %s repeated across restart within one cycle", item.ID)
		}
		seen[item.ID] = true
	}
	if len(seen) != 12 {
		t.Errorf("cycle across restart covered %v items, want 12", len(seen))
	}
}

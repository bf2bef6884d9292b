package catalog

import (
	"sync"
	"time"

	"github.com/dailyglow/glow/internal/domain"
)

// Index provides in-memory storage and lookup for the affirmation library.
// It is the read-only catalog the rotation core resolves ids against; the
// library reloader replaces its contents wholesale.
type Index struct {
	mu         sync.RWMutex
	items      map[string]*domain.Affirmation // ID -> Affirmation
	order      []string                       // insertion order for stable All()
	byCategory map[domain.Category][]string   // Category -> IDs
	lastReload time.Time
}

// NewIndex creates an empty catalog index.
func NewIndex() *Index {
	return &Index{
		items:      make(map[string]*domain.Affirmation),
		byCategory: make(map[domain.Category][]string),
	}
}

// Replace swaps in a new library, dropping everything previously held.
func (idx *Index) Replace(items []*domain.Affirmation) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.items = make(map[string]*domain.Affirmation, len(items))
	idx.order = make([]string, 0, len(items))
	idx.byCategory = make(map[domain.Category][]string)

	for _, item := range items {
		if _, dup := idx.items[item.ID]; dup {
			continue
		}
		idx.items[item.ID] = item
		idx.order = append(idx.order, item.ID)
		idx.byCategory[item.Category] = append(idx.byCategory[item.Category], item.ID)
	}
	idx.lastReload = time.Now()
}

// Get retrieves an affirmation by ID.
func (idx *Index) Get(id string) (*domain.Affirmation, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	item, ok := idx.items[id]
	return item, ok
}

// All returns every affirmation in library order.
func (idx *Index) All() []*domain.Affirmation {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*domain.Affirmation, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.items[id])
	}
	return out
}

// ByCategory returns every affirmation in one category.
func (idx *Index) ByCategory(c domain.Category) []*domain.Affirmation {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	ids := idx.byCategory[c]
	out := make([]*domain.Affirmation, 0, len(ids))
	for _, id := range ids {
		out = append(out, idx.items[id])
	}
	return out
}

// Eligible returns the catalog subset matching the category filter.
// An empty filter means no filter: the whole catalog is eligible.
func (idx *Index) Eligible(categories []domain.Category) []*domain.Affirmation {
	if len(categories) == 0 {
		return idx.All()
	}

	allowed := make(map[domain.Category]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*domain.Affirmation, 0, len(idx.order))
	for _, id := range idx.order {
		if item := idx.items[id]; allowed[item.Category] {
			out = append(out, item)
		}
	}
	return out
}

// Count returns the number of affirmations in the catalog.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.items)
}

// CategoryCount returns how many categories currently have items.
func (idx *Index) CategoryCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.byCategory)
}

// LastReload returns the timestamp of the last library replacement.
func (idx *Index) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

package library

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/dailyglow/glow/internal/domain"
)

// Mapper converts library entries to domain.Affirmation entities.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapAffirmations converts a parsed library Config to domain affirmations.
// Entries with empty text or an unknown category are skipped; an entry
// without an explicit id gets one derived from its text, so reloading the
// same file never changes identities (the persisted deck depends on that).
func (m *Mapper) MapAffirmations(config Config) ([]*domain.Affirmation, error) {
	var affirmations []*domain.Affirmation
	now := time.Now()

	for _, entry := range config.Affirmations {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}

		category, err := domain.ParseCategory(strings.TrimSpace(entry.Category))
		if err != nil {
			continue
		}

		id := strings.TrimSpace(entry.ID)
		if id == "" {
			id = deriveID(text, string(category))
		}

		affirmations = append(affirmations, &domain.Affirmation{
			ID:        id,
			Text:      text,
			Category:  category,
			DateAdded: now,
		})
	}

	if len(affirmations) == 0 {
		return nil, fmt.Errorf("no valid affirmations found in library config")
	}

	return affirmations, nil
}

// deriveID builds a stable id from the entry content.
// Example: "I am worthy of love" / "Self Love" -> "aff-5f2b9c1d8e3a7f40"
func deriveID(text, category string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(category))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("aff-%016x", h.Sum64())
}

package library

import (
	"testing"

	"github.com/dailyglow/glow/internal/domain"
)

func TestMapperMapAffirmations(t *testing.T) {
	config := Config{
		Affirmations: []Entry{
			{Text: "I am worthy of love and respect", Category: "Self Love"},
			{ID: "custom-1", Text: "Success flows to me easily", Category: "Success"},
		},
	}

	mapper := NewMapper()
	affirmations, err := mapper.MapAffirmations(config)
	if err != nil {
		t.Fatalf("MapAffirmations() error = %v", err)
	}

	if len(affirmations) != 2 {
		t.Fatalf("MapAffirmations() returned %v affirmations, want 2", len(affirmations))
	}

	if affirmations[0].ID == "" {
		t.Error("MapAffirmations() should derive an id when none given")
	}
	if affirmations[1].ID != "custom-1" {
		t.Errorf("MapAffirmations() should keep explicit id, got %q", affirmations[1].ID)
	}
	if affirmations[0].Category != domain.CategorySelfLove {
		t.Errorf("MapAffirmations() category = %v, want %v", affirmations[0].Category, domain.CategorySelfLove)
	}
}

func TestMapperSkipsInvalidEntries(t *testing.T) {
	config := Config{
		Affirmations: []Entry{
			{Text: "", Category: "Joy"},
			{Text: "Valid one", Category: "Joy"},
			{Text: "Unknown category", Category: "Wealth"},
		},
	}

	affirmations, err := NewMapper().MapAffirmations(config)
	if err != nil {
		t.Fatalf("MapAffirmations() error = %v", err)
	}
	if len(affirmations) != 1 {
		t.Errorf("MapAffirmations() returned %v affirmations, want 1", len(affirmations))
	}
}

func TestMapperAllInvalidReturnsError(t *testing.T) {
	config := Config{
		Affirmations: []Entry{{Text: "", Category: ""}},
	}
	if _, err := NewMapper().MapAffirmations(config); err == nil {
		t.Error("MapAffirmations() with no valid entries should return error")
	}
}

func TestDeriveIDStable(t *testing.T) {
	a := deriveID("I am calm", "Peace")
	b := deriveID("I am calm", "Peace")
	if a != b {
		t.Errorf("deriveID not stable: %q vs %q", a, b)
	}
	if a == deriveID("I am calm", "Joy") {
		t.Error("deriveID should differ across categories")
	}
}

func TestBuiltin(t *testing.T) {
	items := Builtin()
	if len(items) == 0 {
		t.Fatal("Builtin() returned no affirmations")
	}

	byCategory := make(map[domain.Category]int)
	seen := make(map[string]bool)
	for _, item := range items {
		byCategory[item.Category]++
		if seen[item.ID] {
			t.Errorf("duplicate builtin id %q", item.ID)
		}
		seen[item.ID] = true
	}
	if len(byCategory) != len(domain.AllCategories) {
		t.Errorf("builtin set covers %v categories, want %v", len(byCategory), len(domain.AllCategories))
	}
}

package domain

import "fmt"

// Category is one of the twelve fixed affirmation categories.
type Category string

const (
	CategorySelfLove      Category = "Self Love"
	CategorySuccess       Category = "Success"
	CategoryHealth        Category = "Health"
	CategoryRelationships Category = "Relationships"
	CategoryAbundance     Category = "Abundance"
	CategoryConfidence    Category = "Confidence"
	CategoryGratitude     Category = "Gratitude"
	CategoryPeace         Category = "Peace"
	CategoryCreativity    Category = "Creativity"
	CategoryMindfulness   Category = "Mindfulness"
	CategoryStrength      Category = "Strength"
	CategoryJoy           Category = "Joy"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategorySelfLove,
	CategorySuccess,
	CategoryHealth,
	CategoryRelationships,
	CategoryAbundance,
	CategoryConfidence,
	CategoryGratitude,
	CategoryPeace,
	CategoryCreativity,
	CategoryMindfulness,
	CategoryStrength,
	CategoryJoy,
}

// CategoryInfo holds the static display attributes of a category.
type CategoryInfo struct {
	Icon        string
	Description string
}

// categoryInfos is a pure lookup table; no behavior hangs off categories.
var categoryInfos = map[Category]CategoryInfo{
	CategorySelfLove:      {Icon: "heart", Description: "Embrace self-love and acceptance"},
	CategorySuccess:       {Icon: "star", Description: "Attract achievement and prosperity"},
	CategoryHealth:        {Icon: "pulse", Description: "Nurture your body and wellness"},
	CategoryRelationships: {Icon: "people", Description: "Strengthen connections with others"},
	CategoryAbundance:     {Icon: "sparkles", Description: "Welcome prosperity and wealth"},
	CategoryConfidence:    {Icon: "check", Description: "Build unshakeable self-belief"},
	CategoryGratitude:     {Icon: "hands", Description: "Cultivate appreciation and joy"},
	CategoryPeace:         {Icon: "leaf", Description: "Find calm and tranquility"},
	CategoryCreativity:    {Icon: "brush", Description: "Unlock your creative potential"},
	CategoryMindfulness:   {Icon: "brain", Description: "Stay present and aware"},
	CategoryStrength:      {Icon: "bolt", Description: "Build inner resilience"},
	CategoryJoy:           {Icon: "smile", Description: "Embrace happiness daily"},
}

// Info returns the display attributes for c.
func (c Category) Info() CategoryInfo {
	return categoryInfos[c]
}

// Valid reports whether c is one of the twelve known categories.
func (c Category) Valid() bool {
	_, ok := categoryInfos[c]
	return ok
}

// ParseCategory resolves a raw string to a known category.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category: %q", raw)
	}
	return c, nil
}

// Mood describes how the user feels; it drives recommendations only.
type Mood string

const (
	MoodEnergized Mood = "Energized"
	MoodCalm      Mood = "Calm"
	MoodFocused   Mood = "Focused"
	MoodHappy     Mood = "Happy"
	MoodGrateful  Mood = "Grateful"
	MoodConfident Mood = "Confident"
	MoodPeaceful  Mood = "Peaceful"
	MoodMotivated Mood = "Motivated"
)

// moodCategories maps each mood to its ordered suggested categories.
var moodCategories = map[Mood][]Category{
	MoodEnergized: {CategoryStrength, CategorySuccess, CategoryConfidence},
	MoodCalm:      {CategoryPeace, CategoryMindfulness, CategoryGratitude},
	MoodFocused:   {CategorySuccess, CategoryStrength, CategoryConfidence},
	MoodHappy:     {CategoryJoy, CategoryGratitude, CategorySelfLove},
	MoodGrateful:  {CategoryGratitude, CategoryAbundance, CategorySelfLove},
	MoodConfident: {CategoryConfidence, CategorySuccess, CategoryStrength},
	MoodPeaceful:  {CategoryPeace, CategoryMindfulness, CategoryGratitude},
	MoodMotivated: {CategoryStrength, CategorySuccess, CategoryAbundance},
}

// SuggestedCategories returns the ordered category list for m.
func (m Mood) SuggestedCategories() []Category {
	return moodCategories[m]
}

// MoodForHour maps an hour of day to the assumed current mood.
// Boundaries are half-open: [5,10) [10,14) [14,18) [18,22).
func MoodForHour(hour int) Mood {
	switch {
	case hour >= 5 && hour < 10:
		return MoodEnergized
	case hour >= 10 && hour < 14:
		return MoodMotivated
	case hour >= 14 && hour < 18:
		return MoodFocused
	case hour >= 18 && hour < 22:
		return MoodCalm
	default:
		return MoodPeaceful
	}
}

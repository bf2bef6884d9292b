package library

import "github.com/dailyglow/glow/internal/domain"

// builtinEntries is the seed library shipped with the binary, used when no
// library file is configured. Ids are derived, so they stay stable across
// restarts and match any later file export of the same entries.
var builtinEntries = []Entry{
	{Text: "I am worthy of love and respect", Category: "Self Love"},
	{Text: "I accept myself exactly as I am", Category: "Self Love"},
	{Text: "I treat myself with kindness and patience", Category: "Self Love"},
	{Text: "My relationship with myself grows stronger every day", Category: "Self Love"},

	{Text: "Success flows to me easily", Category: "Success"},
	{Text: "I turn obstacles into opportunities", Category: "Success"},
	{Text: "Every step I take moves me toward my goals", Category: "Success"},
	{Text: "I am building the life I want", Category: "Success"},

	{Text: "My body is healthy and strong", Category: "Health"},
	{Text: "I nourish my body with what it needs", Category: "Health"},
	{Text: "Every breath fills me with energy", Category: "Health"},
	{Text: "I honor my need for rest", Category: "Health"},

	{Text: "I attract positive relationships", Category: "Relationships"},
	{Text: "I give and receive love freely", Category: "Relationships"},
	{Text: "The people around me lift me up", Category: "Relationships"},
	{Text: "I communicate openly and honestly", Category: "Relationships"},

	{Text: "Abundance flows into my life", Category: "Abundance"},
	{Text: "I am open to receiving all that I need", Category: "Abundance"},
	{Text: "Opportunities find me wherever I go", Category: "Abundance"},
	{Text: "There is more than enough for me", Category: "Abundance"},

	{Text: "I radiate confidence", Category: "Confidence"},
	{Text: "I trust my own judgment", Category: "Confidence"},
	{Text: "I speak up for what I believe in", Category: "Confidence"},
	{Text: "[NAME], you are capable of amazing things", Category: "Confidence"},

	{Text: "I am grateful for all I have", Category: "Gratitude"},
	{Text: "Small moments bring me great joy", Category: "Gratitude"},
	{Text: "I notice the good in every day", Category: "Gratitude"},
	{Text: "Thankfulness fills my heart", Category: "Gratitude"},

	{Text: "Peace flows through me", Category: "Peace"},
	{Text: "I release what I cannot control", Category: "Peace"},
	{Text: "Calm is my natural state", Category: "Peace"},
	{Text: "I breathe in peace and breathe out tension", Category: "Peace"},

	{Text: "My creativity has no limits", Category: "Creativity"},
	{Text: "New ideas come to me effortlessly", Category: "Creativity"},
	{Text: "I express myself freely and originally", Category: "Creativity"},
	{Text: "Inspiration surrounds me", Category: "Creativity"},

	{Text: "I am present and mindful", Category: "Mindfulness"},
	{Text: "This moment is enough", Category: "Mindfulness"},
	{Text: "I observe my thoughts without judgment", Category: "Mindfulness"},
	{Text: "I am exactly where I need to be", Category: "Mindfulness"},

	{Text: "I am strong and resilient", Category: "Strength"},
	{Text: "I have survived every hard day so far", Category: "Strength"},
	{Text: "Challenges make me grow", Category: "Strength"},
	{Text: "My inner strength is limitless", Category: "Strength"},

	{Text: "Joy fills my heart", Category: "Joy"},
	{Text: "I choose happiness today", Category: "Joy"},
	{Text: "Laughter comes easily to me", Category: "Joy"},
	{Text: "I find delight in simple things", Category: "Joy"},
}

// Builtin returns the seed affirmation set.
func Builtin() []*domain.Affirmation {
	affirmations, err := NewMapper().MapAffirmations(Config{Affirmations: builtinEntries})
	if err != nil {
		// The builtin set is static and always valid.
		panic(err)
	}
	return affirmations
}

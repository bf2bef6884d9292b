package domain

import "time"

// AchievementCategory groups achievements on the achievements screen.
type AchievementCategory string

const (
	AchievementStreak       AchievementCategory = "Consistency"
	AchievementAffirmations AchievementCategory = "Affirmations"
	AchievementJournal      AchievementCategory = "Journaling"
	AchievementGratitude    AchievementCategory = "Gratitude"
	AchievementMindfulness  AchievementCategory = "Mindfulness"
	AchievementSocial       AchievementCategory = "Community"
	AchievementExplorer     AchievementCategory = "Explorer"
	AchievementPremium      AchievementCategory = "Premium"
)

// AllAchievementCategories lists every achievement group in display order.
var AllAchievementCategories = []AchievementCategory{
	AchievementStreak,
	AchievementAffirmations,
	AchievementJournal,
	AchievementGratitude,
	AchievementMindfulness,
	AchievementSocial,
	AchievementExplorer,
	AchievementPremium,
}

// Achievement is one entry of the fixed achievement catalog plus the user's
// mutable progress toward it. Progress, IsUnlocked and UnlockedDate are
// owned exclusively by the achievement engine. IsUnlocked never reverts.
type Achievement struct {
	ID            string              `json:"id"`
	Category      AchievementCategory `json:"category"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	RequiredValue int                 `json:"requiredValue"`
	RewardPoints  int                 `json:"rewardPoints"`
	Progress      int                 `json:"progress"`
	IsUnlocked    bool                `json:"isUnlocked"`
	UnlockedDate  *time.Time          `json:"unlockedDate,omitempty"`
}

// IsComplete reports whether progress has reached the requirement.
func (a *Achievement) IsComplete() bool {
	return a.Progress >= a.RequiredValue
}

// ProgressFraction is progress toward the requirement, capped at 1.
func (a *Achievement) ProgressFraction() float64 {
	if a.RequiredValue <= 0 {
		return 0
	}
	f := float64(a.Progress) / float64(a.RequiredValue)
	if f > 1 {
		return 1
	}
	return f
}

// AchievementDefinitions returns the static achievement catalog with zero
// progress. The catalog is closed: the engine ignores unknown ids.
func AchievementDefinitions() []*Achievement {
	defs := []struct {
		id       string
		category AchievementCategory
		title    string
		desc     string
		required int
		points   int
	}{
		// Consistency
		{"streak_7", AchievementStreak, "Week Warrior", "Use the app for 7 days in a row", 7, 50},
		{"streak_30", AchievementStreak, "Monthly Master", "Maintain a 30-day streak", 30, 200},
		{"streak_100", AchievementStreak, "Century Club", "Achieve a 100-day streak", 100, 1000},
		{"streak_365", AchievementStreak, "Year of Growth", "Complete a full year streak", 365, 5000},

		// Affirmations
		{"affirmations_10", AchievementAffirmations, "Affirmation Starter", "Read 10 affirmations", 10, 25},
		{"affirmations_50", AchievementAffirmations, "Positive Thinker", "Read 50 affirmations", 50, 100},
		{"affirmations_100", AchievementAffirmations, "Affirmation Expert", "Read 100 affirmations", 100, 250},
		{"affirmations_500", AchievementAffirmations, "Positivity Champion", "Read 500 affirmations", 500, 1000},
		{"favorites_10", AchievementAffirmations, "Curator", "Save 10 favorite affirmations", 10, 50},
		{"favorites_50", AchievementAffirmations, "Collection Master", "Save 50 favorite affirmations", 50, 200},

		// Journaling
		{"journal_1", AchievementJournal, "First Entry", "Write your first journal entry", 1, 25},
		{"journal_10", AchievementJournal, "Journal Beginner", "Write 10 journal entries", 10, 75},
		{"journal_30", AchievementJournal, "Consistent Writer", "Write 30 journal entries", 30, 200},
		{"journal_100", AchievementJournal, "Journal Master", "Write 100 journal entries", 100, 500},
		{"journal_words_1000", AchievementJournal, "Wordsmith", "Write 1000 total words in journal", 1000, 150},

		// Gratitude
		{"gratitude_10", AchievementGratitude, "Grateful Heart", "Record 10 gratitude items", 10, 50},
		{"gratitude_50", AchievementGratitude, "Appreciation Expert", "Record 50 gratitude items", 50, 150},
		{"gratitude_100", AchievementGratitude, "Gratitude Master", "Record 100 gratitude items", 100, 300},
		{"gratitude_365", AchievementGratitude, "Year of Gratitude", "Record 365 gratitude items", 365, 1000},

		// Mindfulness
		{"morning_10", AchievementMindfulness, "Early Bird", "Use app in the morning 10 times", 10, 75},
		{"evening_10", AchievementMindfulness, "Night Owl", "Use app in the evening 10 times", 10, 75},
		{"moods_all", AchievementMindfulness, "Emotional Explorer", "Track all different moods", 6, 100},
		{"weekend_warrior", AchievementMindfulness, "Weekend Warrior", "Use app every weekend for a month", 8, 150},

		// Explorer
		{"categories_all", AchievementExplorer, "Category Explorer", "Try affirmations from all categories", 10, 200},
		{"features_all", AchievementExplorer, "Feature Master", "Use all app features", 5, 150},
		{"customization", AchievementExplorer, "Personalizer", "Customize your experience", 3, 100},

		// Community
		{"share_1", AchievementSocial, "Spreader of Joy", "Share your first affirmation", 1, 50},
		{"share_10", AchievementSocial, "Inspiration Sharer", "Share 10 affirmations", 10, 150},
		{"invite_friend", AchievementSocial, "Community Builder", "Invite a friend to Daily Glow", 1, 200},

		// Premium
		{"premium_subscriber", AchievementPremium, "Premium Member", "Become a premium subscriber", 1, 500},
		{"premium_annual", AchievementPremium, "Annual Supporter", "Subscribe for a full year", 1, 2000},
	}

	out := make([]*Achievement, 0, len(defs))
	for _, d := range defs {
		out = append(out, &Achievement{
			ID:            d.id,
			Category:      d.category,
			Title:         d.title,
			Description:   d.desc,
			RequiredValue: d.required,
			RewardPoints:  d.points,
		})
	}
	return out
}

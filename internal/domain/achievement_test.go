package domain

import "testing"

func TestAchievementDefinitions(t *testing.T) {
	defs := AchievementDefinitions()
	if len(defs) == 0 {
		t.Fatal("AchievementDefinitions() returned no achievements")
	}

	seen := make(map[string]bool, len(defs))
	for _, a := range defs {
		if a.ID == "" {
			t.Error("achievement with empty id")
		}
		if seen[a.ID] {
			t.Errorf("duplicate achievement id %q", a.ID)
		}
		seen[a.ID] = true

		if a.RequiredValue <= 0 {
			t.Errorf("achievement %s has non-positive required value %d", a.ID, a.RequiredValue)
		}
		if a.RewardPoints < 0 {
			t.Errorf("achievement %s has negative reward points %d", a.ID, a.RewardPoints)
		}
		if a.Progress != 0 || a.IsUnlocked || a.UnlockedDate != nil {
			t.Errorf("achievement %s not pristine: %+v", a.ID, a)
		}
	}
}

func TestAchievementProgressFraction(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		required int
		want     float64
	}{
		{name: "zero progress", progress: 0, required: 10, want: 0},
		{name: "half way", progress: 5, required: 10, want: 0.5},
		{name: "complete", progress: 10, required: 10, want: 1},
		{name: "overshoot capped", progress: 25, required: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Achievement{Progress: tt.progress, RequiredValue: tt.required}
			if got := a.ProgressFraction(); got != tt.want {
				t.Errorf("ProgressFraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAchievementIsComplete(t *testing.T) {
	a := &Achievement{RequiredValue: 5}
	if a.IsComplete() {
		t.Error("fresh achievement should not be complete")
	}
	a.Progress = 5
	if !a.IsComplete() {
		t.Error("achievement at requirement should be complete")
	}
}

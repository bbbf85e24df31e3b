package models

import "testing"

func TestLevelsStrictlyIncreasing(t *testing.T) {
	if Levels[0].XPRequired != 0 {
		t.Fatalf("first tier must start at 0 XP, got %d", Levels[0].XPRequired)
	}
	for i := 1; i < len(Levels); i++ {
		if Levels[i].XPRequired <= Levels[i-1].XPRequired {
			t.Errorf("tier %d xp_required %d not above tier %d's %d",
				Levels[i].Level, Levels[i].XPRequired, Levels[i-1].Level, Levels[i-1].XPRequired)
		}
		if Levels[i].Level != Levels[i-1].Level+1 {
			t.Errorf("tier numbering gap between %d and %d", Levels[i-1].Level, Levels[i].Level)
		}
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp    int
		level int
		title string
	}{
		{0, 1, "Novice"},
		{99, 1, "Novice"},
		{100, 2, "Apprentice"},
		{599, 4, "Adept"},
		{600, 5, "Scholar"},
		{950, 5, "Scholar"},
		{999, 5, "Scholar"},
		{1000, 6, "Expert"},
		{4000, 10, "Legend"},
		{99999, 10, "Legend"},
	}

	for _, tt := range tests {
		got := LevelFor(tt.xp)
		if got.Level != tt.level || got.Title != tt.title {
			t.Errorf("LevelFor(%d) = %d %q, want %d %q", tt.xp, got.Level, got.Title, tt.level, tt.title)
		}
	}
}

func TestLevelForMonotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 5000; xp += 50 {
		level := LevelFor(xp).Level
		if level < prev {
			t.Fatalf("LevelFor(%d) = %d, below previous level %d", xp, level, prev)
		}
		prev = level
	}
}

func TestProgressToNext(t *testing.T) {
	tests := []struct {
		xp   int
		want float64
	}{
		{0, 0},
		{50, 50},
		{600, 0},
		{950, 87.5}, // Scholar at 600, Expert at 1000
		{4000, 100}, // top tier
		{9000, 100}, // above top tier
	}

	for _, tt := range tests {
		if got := ProgressToNext(tt.xp); got != tt.want {
			t.Errorf("ProgressToNext(%d) = %v, want %v", tt.xp, got, tt.want)
		}
	}
}

func TestExpectedPercentage(t *testing.T) {
	tests := []struct {
		score, total int
		want         float64
	}{
		{0, 10, 0},
		{5, 10, 50},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{7, 8, 88}, // 87.5 rounds up
	}

	for _, tt := range tests {
		if got := ExpectedPercentage(tt.score, tt.total); got != tt.want {
			t.Errorf("ExpectedPercentage(%d, %d) = %v, want %v", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	for _, c := range []Category{"", "romaji", "Hiragana", "kanji "} {
		if c.Valid() {
			t.Errorf("category %q should be invalid", c)
		}
	}
}

func TestDifficultyValid(t *testing.T) {
	for _, d := range Difficulties() {
		if !d.Valid() {
			t.Errorf("difficulty %q should be valid", d)
		}
	}
	for _, d := range []Difficulty{"", "extreme", "Easy"} {
		if d.Valid() {
			t.Errorf("difficulty %q should be invalid", d)
		}
	}
}

package models

// Level is one tier in the static XP progression table.
type Level struct {
	Level      int    `json:"level"`
	XPRequired int    `json:"xp_required"`
	Title      string `json:"title"`
	Badge      string `json:"badge"`
}

// Levels is the full tier table, ordered by strictly increasing XPRequired.
// The first tier starts at 0 so every user has a level.
var Levels = []Level{
	{Level: 1, XPRequired: 0, Title: "Novice", Badge: "🌱"},
	{Level: 2, XPRequired: 100, Title: "Apprentice", Badge: "📖"},
	{Level: 3, XPRequired: 250, Title: "Student", Badge: "✏️"},
	{Level: 4, XPRequired: 450, Title: "Adept", Badge: "🎯"},
	{Level: 5, XPRequired: 600, Title: "Scholar", Badge: "📚"},
	{Level: 6, XPRequired: 1000, Title: "Expert", Badge: "🏮"},
	{Level: 7, XPRequired: 1500, Title: "Veteran", Badge: "⛩️"},
	{Level: 8, XPRequired: 2200, Title: "Master", Badge: "🗻"},
	{Level: 9, XPRequired: 3000, Title: "Sage", Badge: "🎋"},
	{Level: 10, XPRequired: 4000, Title: "Legend", Badge: "🐉"},
}

// LevelFor returns the highest tier whose XPRequired is at or below xp.
func LevelFor(xp int) Level {
	current := Levels[0]
	for _, l := range Levels {
		if l.XPRequired > xp {
			break
		}
		current = l
	}
	return current
}

// ProgressToNext returns how far xp has advanced from the current tier
// toward the next one, as a percentage in [0, 100]. At the top tier there
// is no next threshold, so the answer is 100.
func ProgressToNext(xp int) float64 {
	current := LevelFor(xp)
	if current.Level >= Levels[len(Levels)-1].Level {
		return 100
	}
	next := Levels[current.Level] // tiers are 1-based, slice is 0-based
	return 100 * float64(xp-current.XPRequired) / float64(next.XPRequired-current.XPRequired)
}

package progression

// Snapshot carries the signals achievement conditions are evaluated
// against. It is assembled once per activity event.
type Snapshot struct {
	XP                  int
	LessonsCompleted    int
	Streak              int
	AttemptsRetained    int
	PerfectAttempt      bool
	CategoriesAttempted int
	CertificatesEarned  int
	Hour                int // UTC hour of the triggering activity
}

// Achievement is one entry in the static catalog. Check is the unlock
// condition; unlock records themselves live in the database.
type Achievement struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Check       func(Snapshot) bool `json:"-"`
}

// Catalog is the full achievement list. IDs are stable: they are the keys
// of the persisted unlock rows.
var Catalog = []Achievement{
	{
		ID: "first_lesson", Name: "First Steps",
		Description: "Complete your first lesson",
		Check:       func(s Snapshot) bool { return s.LessonsCompleted >= 1 },
	},
	{
		ID: "first_quiz", Name: "Quiz Rookie",
		Description: "Submit your first quiz",
		Check:       func(s Snapshot) bool { return s.AttemptsRetained >= 1 },
	},
	{
		ID: "perfect_score", Name: "Flawless",
		Description: "Score 100% on a quiz",
		Check:       func(s Snapshot) bool { return s.PerfectAttempt },
	},
	{
		ID: "streak_3", Name: "Consistent",
		Description: "Keep a 3-day study streak",
		Check:       func(s Snapshot) bool { return s.Streak >= 3 },
	},
	{
		ID: "streak_7", Name: "Week Warrior",
		Description: "Keep a 7-day study streak",
		Check:       func(s Snapshot) bool { return s.Streak >= 7 },
	},
	{
		ID: "streak_30", Name: "Unstoppable",
		Description: "Keep a 30-day study streak",
		Check:       func(s Snapshot) bool { return s.Streak >= 30 },
	},
	{
		ID: "lessons_10", Name: "Dedicated Learner",
		Description: "Complete 10 lessons",
		Check:       func(s Snapshot) bool { return s.LessonsCompleted >= 10 },
	},
	{
		ID: "lessons_50", Name: "Bookworm",
		Description: "Complete 50 lessons",
		Check:       func(s Snapshot) bool { return s.LessonsCompleted >= 50 },
	},
	{
		ID: "xp_1000", Name: "Scholar's Path",
		Description: "Earn 1,000 XP",
		Check:       func(s Snapshot) bool { return s.XP >= 1000 },
	},
	{
		ID: "all_categories", Name: "Explorer",
		Description: "Attempt quizzes in hiragana, katakana, and kanji",
		Check:       func(s Snapshot) bool { return s.CategoriesAttempted >= 3 },
	},
	{
		ID: "certified", Name: "Certified",
		Description: "Earn your first certificate",
		Check:       func(s Snapshot) bool { return s.CertificatesEarned >= 1 },
	},
	{
		ID: "night_owl", Name: "Night Owl",
		Description: "Study between midnight and 4 AM",
		Check:       func(s Snapshot) bool { return s.Hour >= 0 && s.Hour < 4 },
	},
	{
		ID: "early_bird", Name: "Early Bird",
		Description: "Study between 5 AM and 8 AM",
		Check:       func(s Snapshot) bool { return s.Hour >= 5 && s.Hour < 8 },
	},
}

// CatalogByID looks up a catalog entry.
func CatalogByID(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

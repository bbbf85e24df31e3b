package progression

// XP award rules. These are game rules, not deployment knobs, so they are
// constants rather than configuration.
const (
	xpPerCorrectAnswer = 2
	xpPassBonus        = 25
	xpPerfectBonus     = 50
	xpLessonCompletion = 50
)

// QuizXP returns the XP awarded for one submitted attempt.
func QuizXP(score int, passed bool, perfect bool) int {
	xp := score * xpPerCorrectAnswer
	if passed {
		xp += xpPassBonus
	}
	if perfect {
		xp += xpPerfectBonus
	}
	return xp
}

// LessonXP returns the XP awarded for a lesson's first completion.
func LessonXP() int {
	return xpLessonCompletion
}

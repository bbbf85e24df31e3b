package progression

import "github.com/aaryandewangan/japlearn-sub001/internal/models"

// CertificateStatus is the freshly derived certification state for one
// category. PerDifficultyBest holds nil for a difficulty with no attempts,
// which counts as not passed.
type CertificateStatus struct {
	Verified          bool                           `json:"verified"`
	PerDifficultyBest map[models.Difficulty]*float64 `json:"per_difficulty_best"`
}

// EvaluateCertificate derives pass/fail from the partition's retained
// attempts: verified iff every difficulty's best percentage is at or above
// passingScore. Never cached; the caller recomputes per request.
func EvaluateCertificate(attempts []models.QuizAttempt, passingScore float64) CertificateStatus {
	status := CertificateStatus{
		PerDifficultyBest: make(map[models.Difficulty]*float64, len(models.Difficulties())),
	}
	for _, d := range models.Difficulties() {
		status.PerDifficultyBest[d] = nil
	}

	for _, a := range attempts {
		best := status.PerDifficultyBest[a.Difficulty]
		if best == nil || a.Percentage > *best {
			p := a.Percentage
			status.PerDifficultyBest[a.Difficulty] = &p
		}
	}

	status.Verified = true
	for _, d := range models.Difficulties() {
		best := status.PerDifficultyBest[d]
		if best == nil || *best < passingScore {
			status.Verified = false
			break
		}
	}
	return status
}

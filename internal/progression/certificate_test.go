package progression

import (
	"testing"
	"time"

	"github.com/aaryandewangan/japlearn-sub001/internal/models"
)

const passingScore = 80.0

func TestEvaluateCertificateEmpty(t *testing.T) {
	status := EvaluateCertificate(nil, passingScore)

	if status.Verified {
		t.Error("empty history must not verify")
	}
	for _, d := range models.Difficulties() {
		if status.PerDifficultyBest[d] != nil {
			t.Errorf("best for %s = %v, want nil", d, *status.PerDifficultyBest[d])
		}
	}
}

func TestEvaluateCertificateAllPassed(t *testing.T) {
	attempts := []models.QuizAttempt{
		attempt(models.DifficultyEasy, 95, true, 0),
		attempt(models.DifficultyEasy, 60, false, time.Hour),
		attempt(models.DifficultyMedium, 80, true, 0), // exactly at threshold counts
		attempt(models.DifficultyHard, 85, true, 0),
	}

	status := EvaluateCertificate(attempts, passingScore)
	if !status.Verified {
		t.Fatal("all difficulties at or above threshold must verify")
	}
	if best := status.PerDifficultyBest[models.DifficultyEasy]; best == nil || *best != 95 {
		t.Errorf("easy best = %v, want 95", best)
	}
	if best := status.PerDifficultyBest[models.DifficultyMedium]; best == nil || *best != 80 {
		t.Errorf("medium best = %v, want 80", best)
	}
}

func TestEvaluateCertificateMissingDifficulty(t *testing.T) {
	attempts := []models.QuizAttempt{
		attempt(models.DifficultyEasy, 100, true, 0),
		attempt(models.DifficultyMedium, 100, true, 0),
	}

	status := EvaluateCertificate(attempts, passingScore)
	if status.Verified {
		t.Error("a difficulty with zero attempts counts as not passed")
	}
	if status.PerDifficultyBest[models.DifficultyHard] != nil {
		t.Error("hard best should be nil with no attempts")
	}
}

func TestEvaluateCertificateFlipsWhenPassingAttemptRemoved(t *testing.T) {
	attempts := []models.QuizAttempt{
		attempt(models.DifficultyEasy, 90, true, 0),
		attempt(models.DifficultyMedium, 85, true, 0),
		attempt(models.DifficultyHard, 82, true, 0),
		attempt(models.DifficultyHard, 40, false, time.Hour),
	}

	if !EvaluateCertificate(attempts, passingScore).Verified {
		t.Fatal("expected verified with all three difficulties passing")
	}

	// Drop the only passing hard attempt; the 40% one remains.
	withoutPassing := append([]models.QuizAttempt{}, attempts[:2]...)
	withoutPassing = append(withoutPassing, attempts[3])

	status := EvaluateCertificate(withoutPassing, passingScore)
	if status.Verified {
		t.Error("removing the only passing attempt for one difficulty must flip verified to false")
	}
	if best := status.PerDifficultyBest[models.DifficultyHard]; best == nil || *best != 40 {
		t.Errorf("hard best = %v, want 40", best)
	}
}

func TestEvaluateCertificateBelowThreshold(t *testing.T) {
	attempts := []models.QuizAttempt{
		attempt(models.DifficultyEasy, 79.9, false, 0),
		attempt(models.DifficultyMedium, 90, true, 0),
		attempt(models.DifficultyHard, 90, true, 0),
	}

	if EvaluateCertificate(attempts, passingScore).Verified {
		t.Error("79.9 is below the threshold and must not verify")
	}
}

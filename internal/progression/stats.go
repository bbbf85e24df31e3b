// Package progression holds the read-side aggregation, certification,
// XP award rules, and achievement evaluation for quiz activity. Everything
// here is computed from currently retained attempt rows; pruned attempts
// are invisible.
package progression

import (
	"math"

	"github.com/aaryandewangan/japlearn-sub001/internal/models"
)

// OverallStats summarizes a whole (user, category) partition.
type OverallStats struct {
	TotalAttempts     int     `json:"total_attempts"`
	AveragePercentage float64 `json:"average_percentage"`
	PassedCount       int     `json:"passed_count"`
	BestPercentage    float64 `json:"best_percentage"`
}

// DifficultyStats summarizes one difficulty within a partition.
type DifficultyStats struct {
	Attempts          int     `json:"attempts"`
	AveragePercentage float64 `json:"average_percentage"`
	PassedCount       int     `json:"passed_count"`
}

// Stats is the full stats payload for a category.
type Stats struct {
	Overall      OverallStats                          `json:"overall"`
	ByDifficulty map[models.Difficulty]DifficultyStats `json:"by_difficulty"`
	Recent       []models.QuizAttempt                  `json:"recent"`
}

// ComputeStats aggregates the retained attempts of one partition. The
// input must be ordered newest-first, as the history query returns it.
// An empty partition yields a zero-valued record, never an error.
func ComputeStats(attempts []models.QuizAttempt, recentWindow int) Stats {
	stats := Stats{
		ByDifficulty: make(map[models.Difficulty]DifficultyStats, len(models.Difficulties())),
		Recent:       []models.QuizAttempt{},
	}
	for _, d := range models.Difficulties() {
		stats.ByDifficulty[d] = DifficultyStats{}
	}

	if len(attempts) == 0 {
		return stats
	}

	var overallSum float64
	diffSums := make(map[models.Difficulty]float64)
	for _, a := range attempts {
		stats.Overall.TotalAttempts++
		overallSum += a.Percentage
		if a.Passed {
			stats.Overall.PassedCount++
		}
		if a.Percentage > stats.Overall.BestPercentage {
			stats.Overall.BestPercentage = a.Percentage
		}

		ds := stats.ByDifficulty[a.Difficulty]
		ds.Attempts++
		if a.Passed {
			ds.PassedCount++
		}
		diffSums[a.Difficulty] += a.Percentage
		stats.ByDifficulty[a.Difficulty] = ds
	}

	stats.Overall.AveragePercentage = round2(overallSum / float64(stats.Overall.TotalAttempts))
	for d, ds := range stats.ByDifficulty {
		if ds.Attempts > 0 {
			ds.AveragePercentage = round2(diffSums[d] / float64(ds.Attempts))
			stats.ByDifficulty[d] = ds
		}
	}

	if recentWindow > len(attempts) {
		recentWindow = len(attempts)
	}
	if recentWindow > 0 {
		stats.Recent = attempts[:recentWindow]
	}

	return stats
}

// round2 rounds half-up to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

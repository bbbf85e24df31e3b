package repository

import (
	"context"
	"time"

	"github.com/aaryandewangan/japlearn-sub001/internal/database"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"gorm.io/gorm/clause"
)

// UnlockAchievement records an unlock and reports whether it was new.
// The unlock row is write-once: a second unlock for the same pair hits the
// composite unique index and is silently dropped.
func UnlockAchievement(ctx context.Context, userID uint, achievementID string, at time.Time) (bool, error) {
	unlock := models.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    at,
	}
	result := database.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&unlock)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListUnlocked returns every unlock record for the user.
func ListUnlocked(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	var unlocks []models.UserAchievement
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at ASC").
		Find(&unlocks).Error
	return unlocks, err
}

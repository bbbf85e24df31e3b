package repository

import (
	"context"
	"time"

	"github.com/aaryandewangan/japlearn-sub001/internal/database"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"gorm.io/gorm"
)

// GetOrCreateProgress returns the user's aggregate row, creating the
// zero-valued row on first touch.
func GetOrCreateProgress(ctx context.Context, userID uint) (*models.UserProgress, error) {
	progress := &models.UserProgress{UserID: userID}
	err := database.DB.WithContext(ctx).
		Where(models.UserProgress{UserID: userID}).
		FirstOrCreate(progress).Error
	return progress, err
}

// AddXP atomically adds delta to the user's XP and returns the new total.
// The upsert-with-increment form runs as a single statement, so concurrent
// submissions from the same user on different devices cannot lose updates.
func AddXP(ctx context.Context, userID uint, delta int) (int, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO user_progress (user_id, xp, lessons_completed, streak, last_login, updated_at)
		VALUES (?, ?, 0, 0, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET xp = user_progress.xp + excluded.xp, updated_at = excluded.updated_at
		RETURNING xp`
	var newXP int
	err := database.DB.WithContext(ctx).Raw(query, userID, delta, now, now).Scan(&newXP).Error
	return newXP, err
}

// IncrementLessonsCompleted atomically bumps the lesson counter.
func IncrementLessonsCompleted(ctx context.Context, userID uint) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO user_progress (user_id, xp, lessons_completed, streak, last_login, updated_at)
		VALUES (?, 0, 1, 0, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET lessons_completed = user_progress.lessons_completed + 1, updated_at = excluded.updated_at`
	return database.DB.WithContext(ctx).Exec(query, userID, now, now).Error
}

// TouchActivity refreshes the user's streak and last-login stamp for an
// activity happening at now: same day keeps the streak, the day after
// extends it, anything longer resets it to 1. Runs read-modify-write inside
// a transaction; a same-user race here costs at worst one streak refresh,
// which the next activity corrects.
func TouchActivity(ctx context.Context, userID uint, now time.Time) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress = models.UserProgress{UserID: userID}
		if err := tx.Where(models.UserProgress{UserID: userID}).FirstOrCreate(&progress).Error; err != nil {
			return err
		}

		progress.Streak = nextStreak(progress.Streak, progress.LastLogin, now)
		progress.LastLogin = now

		return tx.Model(&models.UserProgress{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"streak":     progress.Streak,
				"last_login": progress.LastLogin,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func nextStreak(current int, lastLogin, now time.Time) int {
	if current == 0 || lastLogin.IsZero() {
		return 1
	}
	lastDay := lastLogin.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)
	switch today.Sub(lastDay) {
	case 0:
		return current
	case 24 * time.Hour:
		return current + 1
	default:
		return 1
	}
}

// GetOrCreateLessonProgress loads the user's row for one lesson.
func GetOrCreateLessonProgress(ctx context.Context, userID uint, lessonID string) (*models.LessonProgress, error) {
	lesson := &models.LessonProgress{UserID: userID, LessonID: lessonID}
	err := database.DB.WithContext(ctx).
		Where(models.LessonProgress{UserID: userID, LessonID: lessonID}).
		FirstOrCreate(lesson).Error
	return lesson, err
}

// UpdateLessonProgress writes the lesson state and reports whether this
// call was the lesson's first transition to completed, which is the only
// transition that awards XP.
func UpdateLessonProgress(ctx context.Context, userID uint, lessonID string, completed bool, score int) (*models.LessonProgress, bool, error) {
	var lesson *models.LessonProgress
	firstCompletion := false
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lesson = &models.LessonProgress{UserID: userID, LessonID: lessonID}
		if err := tx.Where(models.LessonProgress{UserID: userID, LessonID: lessonID}).FirstOrCreate(lesson).Error; err != nil {
			return err
		}

		firstCompletion = completed && !lesson.Completed
		updates := map[string]interface{}{"score": score}
		if firstCompletion {
			updates["completed"] = true
			updates["completed_at"] = time.Now().UTC()
		}
		if err := tx.Model(lesson).Updates(updates).Error; err != nil {
			return err
		}
		lesson.Score = score
		if firstCompletion {
			lesson.Completed = true
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return lesson, firstCompletion, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/aaryandewangan/japlearn-sub001/internal/database"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"gorm.io/gorm"
)

// RetentionError reports that an attempt was committed but the partition
// could not be pruned. Retention is advisory cleanup: the next write to the
// same partition retries it.
type RetentionError struct {
	Err error
}

func (e *RetentionError) Error() string {
	return fmt.Sprintf("retention pruning failed: %v", e.Err)
}

func (e *RetentionError) Unwrap() error { return e.Err }

// InsertAttempt stores a new quiz attempt and prunes its (user, category)
// partition down to cap rows, inside a single transaction so that two
// concurrent submissions cannot both observe the pre-insert row count and
// over-delete.
//
// If the transaction fails at the prune step, the insert is retried on its
// own: the attempt must be considered committed even when cleanup fails.
// In that case the returned error is a *RetentionError and the caller
// should log it while still treating the submission as accepted.
func InsertAttempt(ctx context.Context, attempt *models.QuizAttempt, cap int) error {
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		if err := pruneTx(tx, attempt.UserID, attempt.Category, cap); err != nil {
			return &RetentionError{Err: err}
		}
		return nil
	})
	if err == nil {
		return nil
	}

	retErr, ok := err.(*RetentionError)
	if !ok {
		return err
	}

	// The combined transaction rolled back on the prune step. Commit the
	// attempt alone; retention catches up on the next write.
	attempt.ID = 0
	if insErr := database.DB.WithContext(ctx).Create(attempt).Error; insErr != nil {
		return insErr
	}
	return retErr
}

// EnforceRetention prunes a partition outside the write path. Idempotent:
// with no new writes a second call deletes nothing.
func EnforceRetention(ctx context.Context, userID uint, category models.Category, cap int) error {
	return pruneTx(database.DB.WithContext(ctx), userID, category, cap)
}

// pruneTx deletes every row of the partition except the cap most recent,
// ordered by created_at with row id as the tie-breaker so the newest insert
// always wins. No retained row is ever older than a deleted one.
func pruneTx(tx *gorm.DB, userID uint, category models.Category, cap int) error {
	if cap <= 0 {
		return nil
	}
	query := `
		DELETE FROM quiz_attempts
		WHERE user_id = ? AND category = ?
		AND id NOT IN (
			SELECT id FROM quiz_attempts
			WHERE user_id = ? AND category = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`
	return tx.Exec(query, userID, category, userID, category, cap).Error
}

// GetHistory returns the currently retained attempts for a partition,
// newest first.
func GetHistory(ctx context.Context, userID uint, category models.Category) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := database.DB.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		Order("created_at DESC, id DESC").
		Find(&attempts).Error
	return attempts, err
}

// CountAttempts returns the number of retained attempts across all
// categories for the user.
func CountAttempts(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// DistinctCategories returns the categories the user has retained attempts in.
func DistinctCategories(ctx context.Context, userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := database.DB.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Distinct("category").
		Where("user_id = ?", userID).
		Pluck("category", &categories).Error
	return categories, err
}

// HasPerfectAttempt reports whether the user has any retained 100% attempt.
func HasPerfectAttempt(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := database.DB.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("user_id = ? AND percentage >= 100", userID).
		Count(&count).Error
	return count > 0, err
}

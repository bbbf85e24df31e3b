package repository

import (
	"context"

	"github.com/aaryandewangan/japlearn-sub001/internal/database"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"gorm.io/gorm"
)

func CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	user := &models.User{Email: email}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	result := database.DB.WithContext(ctx).Create(user)
	return user, result.Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, "email = ?", email)
	return &user, result.Error
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, id)
	return &user, result.Error
}

func DeleteUser(ctx context.Context, userID uint) error {
	return database.DB.WithContext(ctx).Delete(&models.User{}, userID).Error
}

// AdminUserRow is one line of the admin user listing: account plus the
// progression aggregate, zero-valued when the user has no progress row yet.
type AdminUserRow struct {
	ID               uint   `json:"id"`
	Email            string `json:"email"`
	IsAdmin          bool   `json:"is_admin"`
	XP               int    `json:"xp"`
	LessonsCompleted int    `json:"lessons_completed"`
	Streak           int    `json:"streak"`
}

// ListUsersWithProgress returns every account joined to its aggregate row.
func ListUsersWithProgress(ctx context.Context) ([]AdminUserRow, error) {
	var rows []AdminUserRow
	query := `
		SELECT u.id, u.email, u.is_admin,
			COALESCE(p.xp, 0) AS xp,
			COALESCE(p.lessons_completed, 0) AS lessons_completed,
			COALESCE(p.streak, 0) AS streak
		FROM users u
		LEFT JOIN user_progress p ON p.user_id = u.id
		ORDER BY u.id`
	err := database.DB.WithContext(ctx).Raw(query).Scan(&rows).Error
	return rows, err
}

// AdminAdjustXP applies an explicit admin delta to a user's XP, clamped at
// zero. This is the only path allowed to lower XP.
func AdminAdjustXP(ctx context.Context, userID uint, delta int) (int, error) {
	var newXP int
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress := &models.UserProgress{UserID: userID}
		if err := tx.Where(models.UserProgress{UserID: userID}).FirstOrCreate(progress).Error; err != nil {
			return err
		}
		newXP = progress.XP + delta
		if newXP < 0 {
			newXP = 0
		}
		return tx.Model(&models.UserProgress{}).
			Where("user_id = ?", userID).
			Update("xp", newXP).Error
	})
	return newXP, err
}

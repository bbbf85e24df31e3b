package models

import "time"

// UserAchievement is an unlock record: append-only, at most one per
// (user, achievement). The composite unique index makes a second unlock a
// conflict the writer turns into a no-op.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

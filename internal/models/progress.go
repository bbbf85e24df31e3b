package models

import "time"

// UserProgress is the per-user aggregate. XP never decreases except through
// the explicit admin adjustment endpoint; all increments go through atomic
// single-statement updates.
type UserProgress struct {
	UserID           uint      `gorm:"primaryKey" json:"user_id"`
	XP               int       `gorm:"not null;default:0" json:"xp"`
	LessonsCompleted int       `gorm:"not null;default:0" json:"lessons_completed"`
	Streak           int       `gorm:"not null;default:0" json:"streak"`
	LastLogin        time.Time `json:"last_login"`
	UpdatedAt        time.Time `json:"-"`
}

func (UserProgress) TableName() string { return "user_progress" }

// LessonProgress records a user's state for a single lesson. XP for a
// lesson is awarded only on the first transition to completed.
type LessonProgress struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_lesson_user" json:"user_id"`
	LessonID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_lesson_user" json:"lesson_id"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	Score       int       `gorm:"not null;default:0" json:"score"`
	CompletedAt time.Time `json:"completed_at"`
	UpdatedAt   time.Time `json:"-"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }

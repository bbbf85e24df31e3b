package models

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

// Category is a quiz subject area. The set is closed: category used to be
// interpolated into per-category table names, now it is a validated
// discriminator column on a single attempts table.
type Category string

const (
	CategoryHiragana Category = "hiragana"
	CategoryKatakana Category = "katakana"
	CategoryKanji    Category = "kanji"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{CategoryHiragana, CategoryKatakana, CategoryKanji}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryHiragana, CategoryKatakana, CategoryKanji:
		return true
	}
	return false
}

// Difficulty is a quiz difficulty tier, independent of category.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns all valid difficulties in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// AnswerRecord is one per-question outcome inside an attempt's answer history.
type AnswerRecord struct {
	Question string `json:"question"`
	Given    string `json:"given"`
	Expected string `json:"expected"`
	Correct  bool   `json:"correct"`
}

// QuizAttempt is one submitted quiz. Rows are immutable once written and
// are destroyed only by retention pruning.
type QuizAttempt struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Category       Category       `gorm:"type:varchar(16);not null" json:"category"`
	Difficulty     Difficulty     `gorm:"type:varchar(16);not null" json:"difficulty"`
	Score          int            `gorm:"not null" json:"score"`
	TotalQuestions int            `gorm:"not null" json:"total_questions"`
	Percentage     float64        `gorm:"not null" json:"percentage"`
	Passed         bool           `gorm:"not null" json:"passed"`
	AnswerHistory  datatypes.JSON `gorm:"type:jsonb" json:"answer_history"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ExpectedPercentage returns the percentage a valid submission must carry:
// round(100 * score / total) to the nearest integer.
func ExpectedPercentage(score, total int) float64 {
	return math.Round(100 * float64(score) / float64(total))
}

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"gorm.io/datatypes"
)

func newAttempt(userID uint, category models.Category, difficulty models.Difficulty, percentage float64, at time.Time) *models.QuizAttempt {
	score := int(percentage / 10)
	return &models.QuizAttempt{
		UserID:         userID,
		Category:       category,
		Difficulty:     difficulty,
		Score:          score,
		TotalQuestions: 10,
		Percentage:     percentage,
		Passed:         percentage >= 80,
		AnswerHistory:  datatypes.JSON("[]"),
		CreatedAt:      at,
	}
}

func countPartition(t *testing.T, userID uint, category models.Category) int {
	t.Helper()
	attempts, err := GetHistory(context.Background(), userID, category)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	return len(attempts)
}

func TestInsertAttemptRetention(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 12 easy submissions alternating 100 and 50, cap 10: exactly 10 rows
	// remain, the 2 oldest are gone, and the best easy score stays 100.
	for i := 0; i < 12; i++ {
		percentage := 100.0
		if i%2 == 1 {
			percentage = 50.0
		}
		attempt := newAttempt(1, models.CategoryHiragana, models.DifficultyEasy, percentage, base.Add(time.Duration(i)*time.Minute))
		if err := InsertAttempt(ctx, attempt, 10); err != nil {
			t.Fatalf("insert attempt %d: %v", i, err)
		}
	}

	attempts, err := GetHistory(ctx, 1, models.CategoryHiragana)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(attempts) != 10 {
		t.Fatalf("retained %d attempts, want 10", len(attempts))
	}

	// Newest-first; the two oldest (minute 0 and 1) must be gone.
	oldest := attempts[len(attempts)-1]
	if oldest.CreatedAt.Before(base.Add(2 * time.Minute)) {
		t.Errorf("oldest retained attempt at %v, want nothing before %v", oldest.CreatedAt, base.Add(2*time.Minute))
	}
	if attempts[0].CreatedAt != base.Add(11*time.Minute).UTC() && !attempts[0].CreatedAt.Equal(base.Add(11*time.Minute)) {
		t.Errorf("newest retained attempt at %v, want %v", attempts[0].CreatedAt, base.Add(11*time.Minute))
	}

	best := 0.0
	for _, a := range attempts {
		if a.Percentage > best {
			best = a.Percentage
		}
	}
	if best != 100 {
		t.Errorf("best percentage = %v, want 100", best)
	}
}

func TestInsertAttemptSurvivesPruneFailure(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		attempt := newAttempt(1, models.CategoryHiragana, models.DifficultyEasy, 50, base.Add(time.Duration(i)*time.Minute))
		if err := InsertAttempt(ctx, attempt, 3); err != nil {
			t.Fatalf("insert attempt %d: %v", i, err)
		}
	}

	// Block deletes so pruning fails while the insert itself still works.
	block := `CREATE TRIGGER block_attempt_delete BEFORE DELETE ON quiz_attempts
		BEGIN SELECT RAISE(ABORT, 'deletes disabled'); END;`
	if err := db.Exec(block).Error; err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	attempt := newAttempt(1, models.CategoryHiragana, models.DifficultyEasy, 90, base.Add(10*time.Minute))
	err := InsertAttempt(ctx, attempt, 3)
	var retErr *RetentionError
	if !errors.As(err, &retErr) {
		t.Fatalf("expected a *RetentionError, got %v", err)
	}

	// The attempt must be committed despite the failed cleanup, so the
	// partition temporarily exceeds the cap.
	attempts, err := GetHistory(ctx, 1, models.CategoryHiragana)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(attempts) != 4 {
		t.Fatalf("retained %d attempts, want 4", len(attempts))
	}
	if attempts[0].Percentage != 90 {
		t.Errorf("newest attempt percentage = %v, want 90", attempts[0].Percentage)
	}

	// The next successful write prunes the partition back down to the cap.
	if err := db.Exec("DROP TRIGGER block_attempt_delete").Error; err != nil {
		t.Fatalf("drop trigger: %v", err)
	}
	next := newAttempt(1, models.CategoryHiragana, models.DifficultyEasy, 60, base.Add(11*time.Minute))
	if err := InsertAttempt(ctx, next, 3); err != nil {
		t.Fatalf("insert after unblocking deletes: %v", err)
	}
	if got := countPartition(t, 1, models.CategoryHiragana); got != 3 {
		t.Errorf("retained %d attempts after recovery, want 3", got)
	}
}

func TestInsertAttemptNoPruneBelowCap(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		attempt := newAttempt(1, models.CategoryKanji, models.DifficultyMedium, 70, base.Add(time.Duration(i)*time.Minute))
		if err := InsertAttempt(ctx, attempt, 10); err != nil {
			t.Fatalf("insert attempt %d: %v", i, err)
		}
	}
	if got := countPartition(t, 1, models.CategoryKanji); got != 4 {
		t.Errorf("retained %d attempts, want 4", got)
	}
}

func TestRetentionIsPerPartition(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		if err := InsertAttempt(ctx, newAttempt(1, models.CategoryHiragana, models.DifficultyEasy, 80, at), 3); err != nil {
			t.Fatalf("insert hiragana %d: %v", i, err)
		}
		if err := InsertAttempt(ctx, newAttempt(1, models.CategoryKatakana, models.DifficultyEasy, 80, at), 3); err != nil {
			t.Fatalf("insert katakana %d: %v", i, err)
		}
		if err := InsertAttempt(ctx, newAttempt(2, models.CategoryHiragana, models.DifficultyEasy, 80, at), 3); err != nil {
			t.Fatalf("insert user2 %d: %v", i, err)
		}
	}

	for _, check := range []struct {
		userID   uint
		category models.Category
	}{
		{1, models.CategoryHiragana},
		{1, models.CategoryKatakana},
		{2, models.CategoryHiragana},
	} {
		if got := countPartition(t, check.userID, check.category); got != 3 {
			t.Errorf("partition (%d, %s) retained %d, want 3", check.userID, check.category, got)
		}
	}
}

func TestEnforceRetentionIdempotent(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 8; i++ {
		attempt := newAttempt(1, models.CategoryHiragana, models.DifficultyEasy, 80, base.Add(time.Duration(i)*time.Minute))
		if err := InsertAttempt(ctx, attempt, 5); err != nil {
			t.Fatalf("insert attempt %d: %v", i, err)
		}
	}
	if got := countPartition(t, 1, models.CategoryHiragana); got != 5 {
		t.Fatalf("retained %d attempts, want 5", got)
	}

	// A second pass with no new writes deletes nothing.
	if err := EnforceRetention(ctx, 1, models.CategoryHiragana, 5); err != nil {
		t.Fatalf("enforce retention: %v", err)
	}
	if got := countPartition(t, 1, models.CategoryHiragana); got != 5 {
		t.Errorf("retained %d attempts after no-op pass, want 5", got)
	}
}

func TestRetentionTieBreakByID(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Same timestamp on every row: the newest insert (highest id) wins.
	var lastID uint
	for i := 0; i < 4; i++ {
		attempt := newAttempt(1, models.CategoryHiragana, models.DifficultyEasy, 80, at)
		if err := InsertAttempt(ctx, attempt, 2); err != nil {
			t.Fatalf("insert attempt %d: %v", i, err)
		}
		lastID = attempt.ID
	}

	attempts, err := GetHistory(ctx, 1, models.CategoryHiragana)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("retained %d attempts, want 2", len(attempts))
	}
	if attempts[0].ID != lastID {
		t.Errorf("newest retained id = %d, want %d", attempts[0].ID, lastID)
	}
}

func TestDistinctCategoriesAndCounts(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := InsertAttempt(ctx, newAttempt(1, models.CategoryHiragana, models.DifficultyEasy, 100, at), 10); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := InsertAttempt(ctx, newAttempt(1, models.CategoryKanji, models.DifficultyHard, 60, at), 10); err != nil {
		t.Fatalf("insert: %v", err)
	}

	categories, err := DistinctCategories(ctx, 1)
	if err != nil {
		t.Fatalf("distinct categories: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("distinct categories = %v, want 2 entries", categories)
	}

	count, err := CountAttempts(ctx, 1)
	if err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	perfect, err := HasPerfectAttempt(ctx, 1)
	if err != nil {
		t.Fatalf("has perfect attempt: %v", err)
	}
	if !perfect {
		t.Error("expected a perfect attempt")
	}
	perfect, err = HasPerfectAttempt(ctx, 2)
	if err != nil {
		t.Fatalf("has perfect attempt: %v", err)
	}
	if perfect {
		t.Error("user 2 has no attempts, no perfect expected")
	}
}

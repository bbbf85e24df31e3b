package progression

import (
	"context"
	"time"

	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"github.com/aaryandewangan/japlearn-sub001/internal/repository"
	"go.uber.org/zap"
)

// Engine applies the downstream effects of activity events: XP, streak,
// and achievement unlocks. Every write that can award progression emits an
// event here instead of hand-rolling side effects at its call site.
//
// Engine failures are non-fatal to the event's primary write: the caller
// logs the returned error and still reports the activity as recorded.
type Engine struct {
	log *zap.Logger
}

func NewEngine(log *zap.Logger) *Engine {
	return &Engine{log: log}
}

// QuizSubmittedEvent describes a quiz attempt that has already been
// committed to the result store. Partition-level signals (categories
// attempted, perfect scores) are re-derived from the store during
// evaluation, so the event only carries what the XP award needs.
type QuizSubmittedEvent struct {
	UserID  uint
	Score   int
	Passed  bool
	Perfect bool
	At      time.Time
}

// LessonCompletedEvent describes a lesson progress write that has already
// been committed. FirstCompletion marks the one transition that awards XP.
type LessonCompletedEvent struct {
	UserID          uint
	LessonID        string
	FirstCompletion bool
	At              time.Time
}

// Outcome reports what an event produced.
type Outcome struct {
	NewXP    int          `json:"new_xp"`
	Level    models.Level `json:"level"`
	Unlocked []string     `json:"unlocked_achievements"`
}

// QuizSubmitted awards XP for the attempt, refreshes the streak, and
// evaluates achievements.
func (e *Engine) QuizSubmitted(ctx context.Context, ev QuizSubmittedEvent) (Outcome, error) {
	delta := QuizXP(ev.Score, ev.Passed, ev.Perfect)
	return e.apply(ctx, ev.UserID, delta, ev.At)
}

// LessonCompleted awards XP on a lesson's first completion, refreshes the
// streak, and evaluates achievements. Repeat completions still refresh the
// streak but award nothing.
func (e *Engine) LessonCompleted(ctx context.Context, ev LessonCompletedEvent) (Outcome, error) {
	delta := 0
	if ev.FirstCompletion {
		delta = LessonXP()
		if err := repository.IncrementLessonsCompleted(ctx, ev.UserID); err != nil {
			return Outcome{}, err
		}
	}
	return e.apply(ctx, ev.UserID, delta, ev.At)
}

// Evaluate re-runs achievement evaluation without awarding XP, for events
// that change unlock-relevant state outside the two main paths (e.g. a
// certificate claim).
func (e *Engine) Evaluate(ctx context.Context, userID uint, at time.Time) ([]string, error) {
	progress, err := repository.GetOrCreateProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap, err := e.buildSnapshot(ctx, userID, progress.XP, progress.LessonsCompleted, progress.Streak, at)
	if err != nil {
		return nil, err
	}
	return e.unlock(ctx, userID, snap, at)
}

func (e *Engine) apply(ctx context.Context, userID uint, xpDelta int, at time.Time) (Outcome, error) {
	newXP, err := repository.AddXP(ctx, userID, xpDelta)
	if err != nil {
		return Outcome{}, err
	}

	progress, err := repository.TouchActivity(ctx, userID, at)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{
		NewXP:    newXP,
		Level:    models.LevelFor(newXP),
		Unlocked: []string{},
	}

	snap, err := e.buildSnapshot(ctx, userID, newXP, progress.LessonsCompleted, progress.Streak, at)
	if err != nil {
		// XP and streak are committed; report them even when the
		// achievement pass could not run.
		return outcome, err
	}

	unlocked, err := e.unlock(ctx, userID, snap, at)
	outcome.Unlocked = unlocked
	return outcome, err
}

func (e *Engine) buildSnapshot(ctx context.Context, userID uint, xp, lessons, streak int, at time.Time) (Snapshot, error) {
	attempts, err := repository.CountAttempts(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	perfect, err := repository.HasPerfectAttempt(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	categories, err := repository.DistinctCategories(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	certificates, err := repository.CountCertificates(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		XP:                  xp,
		LessonsCompleted:    lessons,
		Streak:              streak,
		AttemptsRetained:    int(attempts),
		PerfectAttempt:      perfect,
		CategoriesAttempted: len(categories),
		CertificatesEarned:  int(certificates),
		Hour:                at.Hour(),
	}, nil
}

// unlock runs every catalog condition against the snapshot and records new
// unlocks. Already-unlocked achievements are skipped up front; the
// write-once constraint on the unlock row catches the remaining races, so
// evaluating a satisfied condition twice still yields exactly one record.
func (e *Engine) unlock(ctx context.Context, userID uint, snap Snapshot, at time.Time) ([]string, error) {
	existing, err := repository.ListUnlocked(ctx, userID)
	if err != nil {
		return []string{}, err
	}
	have := make(map[string]bool, len(existing))
	for _, u := range existing {
		have[u.AchievementID] = true
	}

	unlocked := []string{}
	for _, a := range Catalog {
		if have[a.ID] || !a.Check(snap) {
			continue
		}
		fresh, err := repository.UnlockAchievement(ctx, userID, a.ID, at)
		if err != nil {
			e.log.Error("Failed to record achievement unlock",
				zap.Error(err),
				zap.Uint("userID", userID),
				zap.String("achievement", a.ID))
			continue
		}
		if fresh {
			unlocked = append(unlocked, a.ID)
		}
	}
	return unlocked, nil
}

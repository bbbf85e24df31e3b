package handlers

import (
	"net/http"
	"time"

	"github.com/aaryandewangan/japlearn-sub001/internal/apperr"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"github.com/aaryandewangan/japlearn-sub001/internal/progression"
	"github.com/aaryandewangan/japlearn-sub001/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	log    *zap.Logger
	engine *progression.Engine
}

func NewUserHandler(log *zap.Logger, engine *progression.Engine) *UserHandler {
	return &UserHandler{log: log, engine: engine}
}

// GetStats returns the user's aggregate progression state.
func (h *UserHandler) GetStats(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondError(c, h.log, apperr.ErrNotAuthenticated)
		return
	}

	progress, err := repository.GetOrCreateProgress(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, h.log, apperr.Store("get progress", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"xp":                progress.XP,
		"level":             models.LevelFor(progress.XP),
		"progress_to_next":  models.ProgressToNext(progress.XP),
		"lessons_completed": progress.LessonsCompleted,
		"streak":            progress.Streak,
		"last_login":        progress.LastLogin,
	})
}

type lessonProgressRequest struct {
	LessonID  string `json:"lesson_id"`
	Completed bool   `json:"completed"`
	Score     *int   `json:"score"`
}

// UpdateLessonProgress writes lesson state and feeds the progression
// engine. XP is awarded only on the lesson's first completion.
func (h *UserHandler) UpdateLessonProgress(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondError(c, h.log, apperr.ErrNotAuthenticated)
		return
	}

	var req lessonProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.Validation("body", "malformed JSON"))
		return
	}
	if req.LessonID == "" {
		respondError(c, h.log, apperr.Validation("lesson_id", "required"))
		return
	}
	score := 0
	if req.Score != nil {
		if *req.Score < 0 {
			respondError(c, h.log, apperr.Validation("score", "must be non-negative"))
			return
		}
		score = *req.Score
	}

	lesson, firstCompletion, err := repository.UpdateLessonProgress(c.Request.Context(), principal.UserID, req.LessonID, req.Completed, score)
	if err != nil {
		respondError(c, h.log, apperr.Store("update lesson progress", err))
		return
	}

	outcome, err := h.engine.LessonCompleted(c.Request.Context(), progression.LessonCompletedEvent{
		UserID:          principal.UserID,
		LessonID:        req.LessonID,
		FirstCompletion: firstCompletion,
		At:              time.Now().UTC(),
	})
	if err != nil {
		h.log.Error("Progression update failed after lesson progress",
			zap.Error(err), zap.Uint("userID", principal.UserID))
	}

	c.JSON(http.StatusOK, gin.H{
		"progress":    lesson,
		"new_xp":      outcome.NewXP,
		"progression": outcome,
	})
}

// ListLevels returns the static tier table.
func (h *UserHandler) ListLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levels": models.Levels})
}

type achievementView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// ListAchievements returns the catalog merged with the caller's unlocks.
func (h *UserHandler) ListAchievements(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondError(c, h.log, apperr.ErrNotAuthenticated)
		return
	}

	unlocks, err := repository.ListUnlocked(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, h.log, apperr.Store("list achievements", err))
		return
	}
	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	views := make([]achievementView, 0, len(progression.Catalog))
	for _, a := range progression.Catalog {
		view := achievementView{ID: a.ID, Name: a.Name, Description: a.Description}
		if at, ok := unlockedAt[a.ID]; ok {
			view.Unlocked = true
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{"achievements": views})
}

// ListCertificates returns the caller's issued certificates.
func (h *UserHandler) ListCertificates(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondError(c, h.log, apperr.ErrNotAuthenticated)
		return
	}
	claims, err := repository.ListCertificates(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, h.log, apperr.Store("list certificates", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"certificates": claims})
}

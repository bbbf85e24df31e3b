package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aaryandewangan/japlearn-sub001/internal/apperr"
	"github.com/aaryandewangan/japlearn-sub001/internal/config"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"github.com/aaryandewangan/japlearn-sub001/internal/progression"
	"github.com/aaryandewangan/japlearn-sub001/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type QuizHandler struct {
	log    *zap.Logger
	engine *progression.Engine
}

func NewQuizHandler(log *zap.Logger, engine *progression.Engine) *QuizHandler {
	return &QuizHandler{log: log, engine: engine}
}

type submitResultRequest struct {
	Category       string                `json:"category"`
	Difficulty     string                `json:"difficulty"`
	Score          *int                  `json:"score"`
	TotalQuestions *int                  `json:"total_questions"`
	Percentage     *float64              `json:"percentage"`
	AnswerHistory  []models.AnswerRecord `json:"answer_history"`
	Timestamp      *time.Time            `json:"timestamp"`
}

// validate rejects a submission before any write. Percentage must match
// the writer-side invariant exactly; the answer history must be one record
// per question and agree with the score.
func (r *submitResultRequest) validate() error {
	if !models.Category(r.Category).Valid() {
		return apperr.Validation("category", "must be one of hiragana, katakana, kanji")
	}
	if !models.Difficulty(r.Difficulty).Valid() {
		return apperr.Validation("difficulty", "must be one of easy, medium, hard")
	}
	if r.Score == nil {
		return apperr.Validation("score", "required")
	}
	if r.TotalQuestions == nil {
		return apperr.Validation("total_questions", "required")
	}
	if r.Percentage == nil {
		return apperr.Validation("percentage", "required")
	}
	if *r.TotalQuestions <= 0 {
		return apperr.Validation("total_questions", "must be positive")
	}
	if *r.Score < 0 || *r.Score > *r.TotalQuestions {
		return apperr.Validation("score", "must be between 0 and total_questions")
	}
	if *r.Percentage != models.ExpectedPercentage(*r.Score, *r.TotalQuestions) {
		return apperr.Validation("percentage", "does not match score/total_questions")
	}
	if len(r.AnswerHistory) != *r.TotalQuestions {
		return apperr.Validation("answer_history", "must have one record per question")
	}
	correct := 0
	for _, rec := range r.AnswerHistory {
		if rec.Correct {
			correct++
		}
	}
	if correct != *r.Score {
		return apperr.Validation("answer_history", "correct answers do not match score")
	}
	return nil
}

// SubmitResult records a quiz attempt. The insert-and-prune transaction is
// the only hard requirement; XP, streak, and achievement updates run after
// it commits and their failure does not unrecord the attempt.
func (h *QuizHandler) SubmitResult(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondError(c, h.log, apperr.ErrNotAuthenticated)
		return
	}

	var req submitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.Validation("body", "malformed JSON"))
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, h.log, err)
		return
	}

	history, err := json.Marshal(req.AnswerHistory)
	if err != nil {
		respondError(c, h.log, apperr.Validation("answer_history", "not serializable"))
		return
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC()
	}

	passed := *req.Percentage >= config.Conf.Progression.PassingScore
	attempt := &models.QuizAttempt{
		UserID:         principal.UserID,
		Category:       models.Category(req.Category),
		Difficulty:     models.Difficulty(req.Difficulty),
		Score:          *req.Score,
		TotalQuestions: *req.TotalQuestions,
		Percentage:     *req.Percentage,
		Passed:         passed,
		AnswerHistory:  datatypes.JSON(history),
		CreatedAt:      timestamp,
	}

	err = repository.InsertAttempt(c.Request.Context(), attempt, config.Conf.Progression.RetentionCap)
	if err != nil {
		var retErr *repository.RetentionError
		if !errors.As(err, &retErr) {
			respondError(c, h.log, apperr.Store("insert attempt", err))
			return
		}
		// The attempt is committed; pruning catches up on the next write.
		h.log.Warn("Retention pruning failed after insert",
			zap.Error(retErr),
			zap.Uint("userID", principal.UserID),
			zap.String("category", req.Category))
	}

	outcome, err := h.engine.QuizSubmitted(c.Request.Context(), progression.QuizSubmittedEvent{
		UserID:  principal.UserID,
		Score:   attempt.Score,
		Passed:  attempt.Passed,
		Perfect: attempt.Percentage >= 100,
		At:      timestamp,
	})
	if err != nil {
		// Non-fatal: the attempt is recorded even when downstream
		// aggregate updates fail.
		h.log.Error("Progression update failed after quiz submission",
			zap.Error(err),
			zap.Uint("userID", principal.UserID))
	}

	c.JSON(http.StatusCreated, gin.H{
		"accepted":    true,
		"attempt":     attempt,
		"progression": outcome,
	})
}

// History returns the retained attempts for a category, newest first.
func (h *QuizHandler) History(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondError(c, h.log, apperr.ErrNotAuthenticated)
		return
	}
	category := models.Category(c.Param("category"))
	if !category.Valid() {
		respondError(c, h.log, apperr.Validation("category", "unknown category"))
		return
	}

	attempts, err := repository.GetHistory(c.Request.Context(), principal.UserID, category)
	if err != nil {
		respondError(c, h.log, apperr.Store("get history", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "attempts": attempts})
}

// Stats returns the derived statistics for a category.
func (h *QuizHandler) Stats(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondError(c, h.log, apperr.ErrNotAuthenticated)
		return
	}
	category := models.Category(c.Param("category"))
	if !category.Valid() {
		respondError(c, h.log, apperr.Validation("category", "unknown category"))
		return
	}

	attempts, err := repository.GetHistory(c.Request.Context(), principal.UserID, category)
	if err != nil {
		respondError(c, h.log, apperr.Store("get history", err))
		return
	}
	stats := progression.ComputeStats(attempts, config.Conf.Progression.RecentWindow)
	c.JSON(http.StatusOK, gin.H{"category": category, "stats": stats})
}

// CertificateStatus derives the certification state for a category. Always
// freshly computed from retained attempts.
func (h *QuizHandler) CertificateStatus(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondError(c, h.log, apperr.ErrNotAuthenticated)
		return
	}
	category := models.Category(c.Param("category"))
	if !category.Valid() {
		respondError(c, h.log, apperr.Validation("category", "unknown category"))
		return
	}

	attempts, err := repository.GetHistory(c.Request.Context(), principal.UserID, category)
	if err != nil {
		respondError(c, h.log, apperr.Store("get history", err))
		return
	}
	status := progression.EvaluateCertificate(attempts, config.Conf.Progression.PassingScore)
	c.JSON(http.StatusOK, gin.H{"category": category, "status": status})
}

// ClaimCertificate issues a verifiable certificate once the category's
// requirements are met. Claiming an already-claimed category returns the
// original certificate.
func (h *QuizHandler) ClaimCertificate(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondError(c, h.log, apperr.ErrNotAuthenticated)
		return
	}
	category := models.Category(c.Param("category"))
	if !category.Valid() {
		respondError(c, h.log, apperr.Validation("category", "unknown category"))
		return
	}

	attempts, err := repository.GetHistory(c.Request.Context(), principal.UserID, category)
	if err != nil {
		respondError(c, h.log, apperr.Store("get history", err))
		return
	}
	status := progression.EvaluateCertificate(attempts, config.Conf.Progression.PassingScore)
	if !status.Verified {
		respondError(c, h.log, apperr.Validation("category", "certificate requirements not met"))
		return
	}

	claim, err := repository.ClaimCertificate(c.Request.Context(), principal.UserID, category)
	if err != nil {
		respondError(c, h.log, apperr.Store("claim certificate", err))
		return
	}

	unlocked, err := h.engine.Evaluate(c.Request.Context(), principal.UserID, time.Now().UTC())
	if err != nil {
		h.log.Error("Achievement evaluation failed after certificate claim",
			zap.Error(err), zap.Uint("userID", principal.UserID))
	}

	c.JSON(http.StatusCreated, gin.H{
		"certificate":           claim,
		"unlocked_achievements": unlocked,
	})
}

// VerifyCertificate is the public lookup for a certificate code.
func (h *QuizHandler) VerifyCertificate(c *gin.Context) {
	code := c.Param("code")
	claim, err := repository.GetCertificateByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":     true,
		"category":  claim.Category,
		"issued_at": claim.IssuedAt,
	})
}

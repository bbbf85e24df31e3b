package handlers

import (
	"net/http"
	"strconv"

	"github.com/aaryandewangan/japlearn-sub001/internal/apperr"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"github.com/aaryandewangan/japlearn-sub001/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the admin panel's API slice. Routes are gated by
// AdminRequired, which trusts only the persisted is_admin column.
type AdminHandler struct {
	log *zap.Logger
}

func NewAdminHandler(log *zap.Logger) *AdminHandler {
	return &AdminHandler{log: log}
}

// ListUsers returns every account with its progression summary.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	rows, err := repository.ListUsersWithProgress(c.Request.Context())
	if err != nil {
		respondError(c, h.log, apperr.Store("list users", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": rows})
}

type adjustXPRequest struct {
	Delta *int `json:"delta"`
}

// AdjustXP applies an explicit admin XP delta. This is the only sanctioned
// way XP can decrease; the result is clamped at zero.
func (h *AdminHandler) AdjustXP(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, h.log, apperr.Validation("id", "must be a numeric user id"))
		return
	}

	var req adjustXPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.Validation("body", "malformed JSON"))
		return
	}
	if req.Delta == nil {
		respondError(c, h.log, apperr.Validation("delta", "required"))
		return
	}

	newXP, err := repository.AdminAdjustXP(c.Request.Context(), uint(userID), *req.Delta)
	if err != nil {
		respondError(c, h.log, apperr.Store("adjust xp", err))
		return
	}

	principal, _ := currentPrincipal(c)
	h.log.Info("Admin XP adjustment",
		zap.Uint("adminID", principal.UserID),
		zap.Uint64("userID", userID),
		zap.Int("delta", *req.Delta),
		zap.Int("newXP", newXP))

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"xp":      newXP,
		"level":   models.LevelFor(newXP),
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/aaryandewangan/japlearn-sub001/internal/apperr"
	"github.com/aaryandewangan/japlearn-sub001/internal/repository"
	"github.com/aaryandewangan/japlearn-sub001/internal/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthHandler is the thin authentication collaborator: it validates
// credentials and establishes the session the principal middleware reads.
// The progression core only ever sees the resulting principal.
type AuthHandler struct {
	log *zap.Logger
}

func NewAuthHandler(log *zap.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.Validation("body", "malformed JSON"))
		return
	}
	if !utils.IsValidEmail(req.Email) {
		respondError(c, h.log, apperr.Validation("email", "invalid email address"))
		return
	}
	if !utils.IsComplexPassword(req.Password) {
		respondError(c, h.log, apperr.Validation("password", "must be at least 8 characters with upper, lower, digit, and symbol"))
		return
	}

	user, err := repository.CreateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		respondError(c, h.log, apperr.Store("create user", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.Validation("body", "malformed JSON"))
		return
	}

	user, err := repository.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	session := sessions.Default(c)
	session.Set("userID", user.ID)
	if err := session.Save(); err != nil {
		respondError(c, h.log, apperr.Store("save session", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email, "is_admin": user.IsAdmin})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		respondError(c, h.log, apperr.Store("clear session", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}

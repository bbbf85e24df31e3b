package handlers

import (
	"errors"
	"net/http"

	"github.com/aaryandewangan/japlearn-sub001/internal/apperr"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PrincipalContextKey is where the principal middleware stores the
// authenticated identity.
const PrincipalContextKey = "principal"

// currentPrincipal extracts the authenticated principal from the request
// context. The second return is false for unauthenticated requests.
func currentPrincipal(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(PrincipalContextKey)
	if !exists {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

// respondError maps the error taxonomy onto HTTP statuses. Validation
// detail goes back to the client; store detail is logged server-side only.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, apperr.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.Error("Request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

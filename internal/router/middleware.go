package router

import (
	"net/http"

	"github.com/aaryandewangan/japlearn-sub001/internal/handlers"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"github.com/aaryandewangan/japlearn-sub001/internal/repository"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PrincipalMiddleware turns a session user ID into the authenticated
// principal handlers consume. A session pointing at a deleted user is
// cleared and the request proceeds as a guest, so no "zombie" sessions
// survive account deletion.
func PrincipalMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get("userID").(uint)
		if !ok {
			c.Next()
			return
		}

		user, err := repository.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			session.Clear()
			session.Options(sessions.Options{Path: "/", MaxAge: -1})
			if err := session.Save(); err != nil {
				log.Warn("Failed to clear stale session", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(handlers.PrincipalContextKey, models.Principal{
			UserID:  user.ID,
			IsAdmin: user.IsAdmin,
		})
		c.Next()
	}
}

// AuthRequired aborts with 401 when no principal was loaded.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(handlers.PrincipalContextKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// AdminRequired aborts with 403 unless the principal's persisted is_admin
// flag is set. There is no other admin signal.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(handlers.PrincipalContextKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		principal, ok := v.(models.Principal)
		if !ok || !principal.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

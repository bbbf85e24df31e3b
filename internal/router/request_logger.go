package router

import (
	"time"

	"github.com/aaryandewangan/japlearn-sub001/internal/handlers"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs every request through zap. When the principal
// middleware resolved a session, the user id is attached so progression
// activity can be traced per account.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if v, ok := c.Get(handlers.PrincipalContextKey); ok {
			if principal, ok := v.(models.Principal); ok {
				fields = append(fields, zap.Uint("user_id", principal.UserID))
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("Request failed", fields...)
		case status >= 400:
			log.Warn("Request rejected", fields...)
		default:
			// Successful requests stay at Debug to keep the files quiet.
			log.Debug("Request completed", fields...)
		}
	}
}

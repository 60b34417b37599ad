package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	ctxUserIDKey = "user_id"
	ctxEmailKey  = "email"
)

// BearerAuthMiddleware - middleware для аутентификации по токену провайдера
func BearerAuthMiddleware(v *Verifier, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			log.Warn("Bearer token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required", "type": "auth"})
			return
		}

		claims, err := v.Verify(strings.TrimSpace(tokenString))
		if err != nil {
			log.WithError(err).Warn("Bearer token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "type": "auth"})
			return
		}

		c.Set(ctxUserIDKey, claims.UserID())
		c.Set(ctxEmailKey, claims.Email)
		c.Next()
	}
}

// UserID возвращает идентификатор пользователя, положенный middleware
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}

// Email возвращает email пользователя, если он есть в токене
func Email(c *gin.Context) string {
	return c.GetString(ctxEmailKey)
}

// SetUserID кладет пользователя в контекст (для тестов хэндлеров)
func SetUserID(c *gin.Context, userID string) {
	c.Set(ctxUserIDKey, userID)
}

package middleware

import (
	"net/http"
	"strings"

	"yardwork_backend/internal/auth"
	"yardwork_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("kind", claims.Kind)
		c.Next()
	}
}

// RequireKinds - ограничение маршрута по типу пользователя
func RequireKinds(kinds ...models.UserKind) gin.HandlerFunc {
	kindSet := make(map[models.UserKind]bool)
	for _, k := range kinds {
		kindSet[k] = true
	}

	return func(c *gin.Context) {
		kindVal, exists := c.Get("kind")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no user kind"})
			return
		}

		kind, ok := kindVal.(models.UserKind)
		if !ok {
			kindStr, isString := kindVal.(string)
			if !isString {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid user kind"})
				return
			}
			kind = models.UserKind(kindStr)
		}

		if !kindSet[kind] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

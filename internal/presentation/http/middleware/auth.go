package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/infrastructure/security"
)

const sessionKey = "session"

// Authenticated validates the bearer token and stores the session claims on
// the request context.
func Authenticated(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := security.ValidateSessionToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(sessionKey, claims)
		c.Next()
	}
}

// AdminOnly requires an authenticated session with the admin role. Must run
// after Authenticated.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, exists := GetSession(c)
		if !exists || session.Role != commerce.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// GetSession returns the session claims stored by Authenticated.
func GetSession(c *gin.Context) (*security.SessionClaims, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*security.SessionClaims)
	return claims, ok
}

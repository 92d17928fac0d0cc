package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/prizelab/giveawayd/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for the authenticated user identifier.
	UserIDContextKey = "userID"
	// RoleContextKey is a gin context key for the authenticated user's role.
	RoleContextKey = "role"
	authCookieName = "giveaway_token"
)

// AuthRequired verifies the bearer token and stores the caller's identity
// in the request context.
func AuthRequired(strategy pkgAuth.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		identity, err := strategy.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(UserIDContextKey, identity.UserID)
		c.Set(RoleContextKey, identity.Role)
		c.Next()
	}
}

// RoleRequired rejects callers whose token does not carry the given role.
// It must run after AuthRequired.
func RoleRequired(role pkgAuth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(RoleContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if got, _ := val.(pkgAuth.Role); got != role {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

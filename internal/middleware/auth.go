package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/services"
)

const (
	userKey  = "currentUser"
	tokenKey = "sessionToken"
)

// SessionResolver turns a bearer token into the user it belongs to.
type SessionResolver interface {
	Resume(ctx context.Context, token string) (*models.User, error)
}

func AuthMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := sessions.Resume(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		// Set user info in the context for handlers to use
		c.Set(userKey, user)
		c.Set(tokenKey, tokenString)

		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

func SessionToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// RequirePermission lets the request through only when the current user
// holds the named flag.
func RequirePermission(category, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !services.HasPermission(CurrentUser(c), category, permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || u.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
			return
		}
		c.Next()
	}
}

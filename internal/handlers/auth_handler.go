// internal/handlers/auth_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/laskin-api/internal/middleware"
	"github.com/harentsoaR/laskin-api/internal/models"
)

// Login checks the credentials as sent, without trimming or case folding.
func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	session, err := h.Auth.Login(c.Request.Context(), loginReq.Email, loginReq.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

// GetCurrentUser returns the session's user and a flat view of its flags.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	flags := map[string]bool{}
	if user.Permissions != nil {
		flags = user.Permissions.Flatten()
	}
	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"isAdmin":     user.Role == models.RoleAdmin,
		"permissions": flags,
	})
}

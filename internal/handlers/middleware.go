package handlers

import (
	"net/http"
	"strings"

	"taskmanager/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey  = "authUser"
	ctxTokenKey = "authToken"
)

// authMiddleware resolves the bearer token into a user and binds both to
// the request context. Revoked tokens fail even with a valid signature.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	user, err := h.services.Authenticate(c.Request.Context(), parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserKey, user)
	c.Set(ctxTokenKey, parts[1])
	c.Next()
}

// currentUser returns the identity bound by authMiddleware.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func currentToken(c *gin.Context) string {
	return c.GetString(ctxTokenKey)
}

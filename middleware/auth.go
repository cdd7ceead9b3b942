package middleware

import (
	"errors"
	"net/http"
	"strings"

	"altailand-backend/models"
	"altailand-backend/services"

	"github.com/gin-gonic/gin"
)

// adminKey is where AdminRequired stashes the resolved *models.Admin.
const adminKey = "current_admin"

// AdminRequired resolves the X-Admin-Token header through the session
// manager. Missing, unknown, superseded and expired tokens all come back
// as a plain 401; the distinction only exists in the session rows.
func AdminRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("X-Admin-Token"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
			return
		}

		admin, err := auth.Resolve(token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired admin session"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}

		c.Set(adminKey, admin)
		c.Next()
	}
}

// CurrentAdmin returns the admin set by AdminRequired.
func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	v, ok := c.Get(adminKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok
}

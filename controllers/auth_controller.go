package controllers

import (
	"log"
	"net/http"
	"strings"

	"altailand-backend/middleware"
	"altailand-backend/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks credentials and issues a fresh session token. Logging in
// invalidates the admin's previous session, so a second device quietly
// logs the first one out.
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	admin, err := ctrl.Auth.Authenticate(username, payload.Password)
	if err != nil {
		serviceError(c, err)
		return
	}

	session, err := ctrl.Auth.CreateSession(admin.ID)
	if err != nil {
		log.Printf("❌ failed to create session for admin %d: %v", admin.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_token": session.SessionToken,
		"expires_at":    session.ExpiresAt,
	})
}

// Me returns the admin bound to the presented token.
func (ctrl *AuthController) Me(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
		return
	}
	c.JSON(http.StatusOK, admin)
}

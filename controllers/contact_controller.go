package controllers

import (
	"encoding/json"
	"net/http"

	"altailand-backend/models"
	"altailand-backend/services"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	Contacts *services.ContactService
}

func NewContactController(contacts *services.ContactService) *ContactController {
	return &ContactController{Contacts: contacts}
}

func (ctrl *ContactController) GetContacts(c *gin.Context) {
	info, err := ctrl.Contacts.Get()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

type contactPayload struct {
	Phone       string            `json:"phone" binding:"required"`
	Email       string            `json:"email" binding:"required"`
	Address     string            `json:"address" binding:"required"`
	WorkHours   map[string]string `json:"work_hours"`
	SocialLinks map[string]string `json:"social_links"`
}

func (ctrl *ContactController) UpdateContacts(c *gin.Context) {
	var payload contactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	info := models.ContactInfo{
		Phone:   payload.Phone,
		Email:   payload.Email,
		Address: payload.Address,
	}
	if payload.WorkHours != nil {
		raw, err := json.Marshal(payload.WorkHours)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work_hours"})
			return
		}
		info.WorkHours = raw
	}
	if payload.SocialLinks != nil {
		raw, err := json.Marshal(payload.SocialLinks)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid social_links"})
			return
		}
		info.SocialLinks = raw
	}

	updated, err := ctrl.Contacts.Upsert(info)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

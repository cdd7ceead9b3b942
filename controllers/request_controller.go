package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"altailand-backend/models"
	"altailand-backend/services"
	"altailand-backend/telegram"

	"github.com/gin-gonic/gin"
)

type RequestController struct {
	Requests *services.RequestService
	Notifier *telegram.Notifier
}

func NewRequestController(requests *services.RequestService, notifier *telegram.Notifier) *RequestController {
	return &RequestController{Requests: requests, Notifier: notifier}
}

// notifyLead pushes the Telegram notification for a freshly persisted
// lead. Runs in its own goroutine after the row is committed; failures
// are logged and never reach the visitor.
func notifyLead(notifier *telegram.Notifier, req models.Request) {
	ev := telegram.Event{
		Kind:  string(req.Type),
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}
	if req.Message != nil {
		ev.Message = *req.Message
	}
	if req.PromoCode != nil {
		ev.PromoCode = *req.PromoCode
	}
	if len(req.Answers) > 0 {
		if err := json.Unmarshal(req.Answers, &ev.Answers); err != nil {
			log.Printf("⚠️  failed to decode answers of request %d: %v", req.ID, err)
		}
	}

	go func() {
		if err := notifier.Notify(ev); err != nil {
			log.Printf("⚠️  failed to send Telegram notification for request %d: %v", req.ID, err)
		}
	}()
}

type requestPayload struct {
	Type    models.RequestType `json:"type" binding:"required"`
	Name    string             `json:"name" binding:"required"`
	Phone   string             `json:"phone" binding:"required"`
	Email   string             `json:"email" binding:"required"`
	Message *string            `json:"message"`
	Answers map[string]string  `json:"answers"`
}

// CreateRequest is the public lead endpoint: contact forms, callback
// orders and quiz submissions all land here.
func (ctrl *RequestController) CreateRequest(c *gin.Context) {
	var payload requestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	req := models.Request{
		Type:    payload.Type,
		Name:    payload.Name,
		Phone:   payload.Phone,
		Email:   payload.Email,
		Message: payload.Message,
	}
	if payload.Answers != nil {
		raw, err := json.Marshal(payload.Answers)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid answers"})
			return
		}
		req.Answers = raw
	}

	if err := ctrl.Requests.Create(&req); err != nil {
		serviceError(c, err)
		return
	}

	notifyLead(ctrl.Notifier, req)

	resp := gin.H{"status": "success"}
	if req.Type == models.RequestTypeQuiz {
		resp["promo_code"] = req.PromoCode
	} else {
		resp["promo_code"] = nil
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *RequestController) GetRequests(c *gin.Context) {
	requests, err := ctrl.Requests.List(
		queryInt(c, "skip", 0),
		queryInt(c, "limit", 100),
		c.Query("type"),
		c.Query("status"),
	)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (ctrl *RequestController) GetRequest(c *gin.Context) {
	requestID, ok := idParam(c, "id")
	if !ok {
		return
	}
	req, err := ctrl.Requests.Get(requestID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

type requestUpdatePayload struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

func (ctrl *RequestController) UpdateRequest(c *gin.Context) {
	requestID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var payload requestUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	req, err := ctrl.Requests.UpdateStatus(requestID, payload.Status, payload.Notes)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

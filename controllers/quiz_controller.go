package controllers

import (
	"encoding/json"
	"net/http"

	"altailand-backend/models"
	"altailand-backend/services"
	"altailand-backend/telegram"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Quiz     *services.QuizService
	Requests *services.RequestService
	Notifier *telegram.Notifier
}

func NewQuizController(quiz *services.QuizService, requests *services.RequestService, notifier *telegram.Notifier) *QuizController {
	return &QuizController{Quiz: quiz, Requests: requests, Notifier: notifier}
}

func (ctrl *QuizController) GetQuestions(c *gin.Context) {
	questions, err := ctrl.Quiz.Questions(queryInt(c, "skip", 0), queryInt(c, "limit", 100))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

type quizSubmission struct {
	Name    string            `json:"name" binding:"required"`
	Phone   string            `json:"phone" binding:"required"`
	Email   string            `json:"email" binding:"required"`
	Answers map[string]string `json:"answers"`
}

// SubmitQuiz records a quiz lead, hands out a promo code and notifies
// the admin chat.
func (ctrl *QuizController) SubmitQuiz(c *gin.Context) {
	var payload quizSubmission
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	req := models.Request{
		Type:  models.RequestTypeQuiz,
		Name:  payload.Name,
		Phone: payload.Phone,
		Email: payload.Email,
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

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"promo_code": req.PromoCode,
	})
}

type questionPayload struct {
	Question  string   `json:"question" binding:"required"`
	Options   []string `json:"options" binding:"required"`
	SortOrder int      `json:"order"`
	IsActive  *bool    `json:"is_active"`
}

func (ctrl *QuizController) CreateQuestion(c *gin.Context) {
	var payload questionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	options, err := json.Marshal(payload.Options)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid options"})
		return
	}

	question := models.QuizQuestion{
		Question:  payload.Question,
		Options:   options,
		SortOrder: payload.SortOrder,
		IsActive:  true,
	}
	if payload.IsActive != nil {
		question.IsActive = *payload.IsActive
	}

	if err := ctrl.Quiz.CreateQuestion(&question); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

type questionUpdatePayload struct {
	Question  *string   `json:"question"`
	Options   *[]string `json:"options"`
	SortOrder *int      `json:"order"`
	IsActive  *bool     `json:"is_active"`
}

func (ctrl *QuizController) UpdateQuestion(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var payload questionUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	changes := map[string]interface{}{}
	if payload.Question != nil {
		changes["question"] = *payload.Question
	}
	if payload.Options != nil {
		options, err := json.Marshal(*payload.Options)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid options"})
			return
		}
		changes["options"] = options
	}
	if payload.SortOrder != nil {
		changes["sort_order"] = *payload.SortOrder
	}
	if payload.IsActive != nil {
		changes["is_active"] = *payload.IsActive
	}

	question, err := ctrl.Quiz.UpdateQuestion(questionID, changes)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (ctrl *QuizController) DeleteQuestion(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	deleted, err := ctrl.Quiz.DeleteQuestion(questionID)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question deleted successfully"})
}

package services

import (
	"errors"
	"fmt"
	"time"

	"altailand-backend/models"

	"gorm.io/gorm"
)

type QuizService struct {
	DB *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{DB: db}
}

func (s *QuizService) Questions(skip, limit int) ([]models.QuizQuestion, error) {
	if limit <= 0 {
		limit = 100
	}
	var questions []models.QuizQuestion
	err := s.DB.Order("sort_order ASC").Offset(skip).Limit(limit).Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("list quiz questions: %w", err)
	}
	return questions, nil
}

func (s *QuizService) CreateQuestion(q *models.QuizQuestion) error {
	if err := s.DB.Create(q).Error; err != nil {
		return fmt.Errorf("create quiz question: %w", err)
	}
	return nil
}

func (s *QuizService) UpdateQuestion(questionID uint, changes map[string]interface{}) (*models.QuizQuestion, error) {
	var question models.QuizQuestion
	if err := s.DB.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get quiz question: %w", err)
	}

	delete(changes, "id")
	delete(changes, "created_at")
	changes["updated_at"] = time.Now().UTC()

	if err := s.DB.Model(&question).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("update quiz question: %w", err)
	}
	return &question, nil
}

func (s *QuizService) DeleteQuestion(questionID uint) (bool, error) {
	result := s.DB.Delete(&models.QuizQuestion{}, questionID)
	if result.Error != nil {
		return false, fmt.Errorf("delete quiz question: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

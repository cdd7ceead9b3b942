package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"altailand-backend/models"

	"gorm.io/gorm"
)

const promoAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePromoCode returns the 8-char code handed out after a quiz
// submission.
func GeneratePromoCode() (string, error) {
	b := make([]byte, 8)
	max := big.NewInt(int64(len(promoAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = promoAlphabet[n.Int64()]
	}
	return string(b), nil
}

type RequestService struct {
	DB *gorm.DB
}

func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{DB: db}
}

// Create persists a new lead. Quiz leads get a promo code generated here
// when the caller did not set one.
func (s *RequestService) Create(req *models.Request) error {
	if req.Type == models.RequestTypeQuiz && req.PromoCode == nil {
		code, err := GeneratePromoCode()
		if err != nil {
			return fmt.Errorf("generate promo code: %w", err)
		}
		req.PromoCode = &code
	}
	if req.Status == "" {
		req.Status = "new"
	}
	if err := s.DB.Create(req).Error; err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

func (s *RequestService) List(skip, limit int, reqType, status string) ([]models.Request, error) {
	if limit <= 0 {
		limit = 100
	}
	q := s.DB.Model(&models.Request{})
	if reqType != "" {
		q = q.Where("type = ?", reqType)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []models.Request
	err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

func (s *RequestService) Get(requestID uint) (*models.Request, error) {
	var req models.Request
	if err := s.DB.First(&req, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return &req, nil
}

// UpdateStatus moves a lead along the follow-up pipeline.
func (s *RequestService) UpdateStatus(requestID uint, status string, notes *string) (*models.Request, error) {
	req, err := s.Get(requestID)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if notes != nil {
		changes["notes"] = *notes
	}
	if err := s.DB.Model(req).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	return req, nil
}

func (s *RequestService) GetByPromo(promoCode string) (*models.Request, error) {
	var req models.Request
	if err := s.DB.Where("promo_code = ?", promoCode).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request by promo: %w", err)
	}
	return &req, nil
}

package services

import (
	"errors"
	"fmt"

	"altailand-backend/models"

	"gorm.io/gorm"
)

// ContactService manages the single public contact card.
type ContactService struct {
	DB *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{DB: db}
}

func (s *ContactService) Get() (*models.ContactInfo, error) {
	var info models.ContactInfo
	if err := s.DB.First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contact info: %w", err)
	}
	return &info, nil
}

// Upsert overwrites the card, creating it on first use.
func (s *ContactService) Upsert(info models.ContactInfo) (*models.ContactInfo, error) {
	existing, err := s.Get()
	if errors.Is(err, ErrNotFound) {
		if err := s.DB.Create(&info).Error; err != nil {
			return nil, fmt.Errorf("create contact info: %w", err)
		}
		return &info, nil
	}
	if err != nil {
		return nil, err
	}

	info.ID = existing.ID
	if err := s.DB.Model(existing).Updates(map[string]interface{}{
		"phone":        info.Phone,
		"email":        info.Email,
		"address":      info.Address,
		"work_hours":   info.WorkHours,
		"social_links": info.SocialLinks,
	}).Error; err != nil {
		return nil, fmt.Errorf("update contact info: %w", err)
	}
	return s.Get()
}

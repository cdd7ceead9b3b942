package models

import (
	"time"

	"gorm.io/datatypes"
)

// ContactInfo is the single public contact card (one row).
type ContactInfo struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Phone       string         `gorm:"size:50" json:"phone"`
	Email       string         `gorm:"size:255" json:"email"`
	Address     string         `gorm:"size:255" json:"address"`
	WorkHours   datatypes.JSON `json:"work_hours"`
	SocialLinks datatypes.JSON `json:"social_links"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuizQuestion struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Question  string         `gorm:"type:text;not null" json:"question"`
	Options   datatypes.JSON `gorm:"not null" json:"options"`
	SortOrder int            `gorm:"default:0" json:"order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

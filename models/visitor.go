package models

import "time"

type Visitor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"size:128;not null;index" json:"session_id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Path      string    `gorm:"size:255;not null" json:"path"`
	UserAgent *string   `gorm:"size:255" json:"user_agent"`
	IPAddress *string   `gorm:"size:45" json:"ip_address"`
	Referrer  *string   `gorm:"size:255" json:"referrer"`
}

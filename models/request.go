package models

import (
	"time"

	"gorm.io/datatypes"
)

type RequestType string

const (
	RequestTypeQuiz        RequestType = "quiz"
	RequestTypeContactForm RequestType = "contact_form"
	RequestTypeCallback    RequestType = "callback"
)

// Request is a captured lead: a quiz submission, a contact form entry or
// a callback order. Answers stays a freeform JSON map because the quiz
// questions themselves are editable at runtime.
type Request struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Type      RequestType    `gorm:"size:20;not null" json:"type"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Phone     string         `gorm:"size:50;not null" json:"phone"`
	Email     string         `gorm:"size:255;not null" json:"email"`
	Message   *string        `gorm:"type:text" json:"message"`
	Answers   datatypes.JSON `json:"answers"`
	PromoCode *string        `gorm:"size:32;index" json:"promo_code"`
	Status    string         `gorm:"size:20;default:new" json:"status"` // new, processing, completed, rejected
	Notes     *string        `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

package models

import "time"

type Admin struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"uniqueIndex;size:150" json:"username"`
	HashedPassword string     `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLogin      *time.Time `json:"last_login"`
}

// AdminSession is a bearer token row. Sessions are never deleted: a login
// deactivates the previous ones, expiry is checked at resolve time, and the
// rows stay around as an audit trail.
type AdminSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AdminID      uint      `gorm:"index" json:"admin_id"`
	SessionToken string    `gorm:"uniqueIndex;size:128" json:"session_token"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
}

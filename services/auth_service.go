package services

import (
	"errors"
	"fmt"
	"time"

	"altailand-backend/models"
	"altailand-backend/utils"

	"gorm.io/gorm"
)

// SessionTTL is how long a freshly issued admin session stays valid.
const SessionTTL = 7 * 24 * time.Hour

// AuthService authenticates admins and manages their bearer sessions.
// Invariant: at most one active session per admin — issuing a new one
// deactivates all previous ones in the same transaction.
type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Authenticate checks the credentials and stamps last_login on success.
// Unknown usernames and wrong passwords are indistinguishable to the
// caller; last_login is never touched on failure.
func (s *AuthService) Authenticate(username, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	if !utils.CheckPassword(password, admin.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.DB.Model(&admin).Update("last_login", now).Error; err != nil {
		return nil, fmt.Errorf("update last_login: %w", err)
	}
	admin.LastLogin = &now
	return &admin, nil
}

// CreateSession deactivates every active session of the admin and inserts
// a new one, all inside one transaction. Under two concurrent logins the
// loser's session is superseded immediately: last login wins.
func (s *AuthService) CreateSession(adminID uint) (*models.AdminSession, error) {
	token, err := utils.GenerateSessionToken(utils.SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	session := models.AdminSession{
		AdminID:      adminID,
		SessionToken: token,
		ExpiresAt:    time.Now().UTC().Add(SessionTTL),
		IsActive:     true,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Bulk update, not read-then-write: two racing logins must not
		// both end up with an active session.
		if err := tx.Model(&models.AdminSession{}).
			Where("admin_id = ? AND is_active = ?", adminID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

// Resolve maps a bearer token to its admin. A session counts only while
// it is active and not yet expired; expiry is implicit, the row is never
// mutated by the passage of time.
func (s *AuthService) Resolve(token string) (*models.Admin, error) {
	var session models.AdminSession
	err := s.DB.
		Where("session_token = ? AND is_active = ? AND expires_at > ?", token, true, time.Now().UTC()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	var admin models.Admin
	if err := s.DB.First(&admin, session.AdminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup session admin: %w", err)
	}
	return &admin, nil
}

// DeactivateAll logs the admin out everywhere.
func (s *AuthService) DeactivateAll(adminID uint) error {
	return s.DB.Model(&models.AdminSession{}).
		Where("admin_id = ? AND is_active = ?", adminID, true).
		Update("is_active", false).Error
}

// CreateAdmin registers a new admin account. Used by the bootstrap CLI.
func (s *AuthService) CreateAdmin(username, password string) (*models.Admin, error) {
	var existing models.Admin
	err := s.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: admin %q already exists", ErrValidation, username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := models.Admin{
		Username:       username,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return &admin, nil
}

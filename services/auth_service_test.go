package services

import (
	"errors"
	"testing"
	"time"

	"altailand-backend/models"
)

func newAuthFixture(t *testing.T) (*AuthService, *models.Admin) {
	t.Helper()

	svc := NewAuthService(newTestDB(t))
	admin, err := svc.CreateAdmin("admin", "correct-horse")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return svc, admin
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newAuthFixture(t)

	t.Run("Success", func(t *testing.T) {
		admin, err := svc.Authenticate("admin", "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if admin.LastLogin == nil {
			t.Error("last_login not stamped on successful login")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		if _, err := svc.Authenticate("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("want ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		if _, err := svc.Authenticate("nobody", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("want ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthenticateFailureLeavesLastLogin(t *testing.T) {
	svc, admin := newAuthFixture(t)

	if _, err := svc.Authenticate("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}

	var fresh models.Admin
	if err := svc.DB.First(&fresh, admin.ID).Error; err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if fresh.LastLogin != nil {
		t.Errorf("last_login stamped on failed login: %v", fresh.LastLogin)
	}
}

func TestCreateSessionSupersedesPrevious(t *testing.T) {
	svc, admin := newAuthFixture(t)

	first, err := svc.CreateSession(admin.ID)
	if err != nil {
		t.Fatalf("first session: %v", err)
	}
	second, err := svc.CreateSession(admin.ID)
	if err != nil {
		t.Fatalf("second session: %v", err)
	}
	if first.SessionToken == second.SessionToken {
		t.Fatal("two sessions share a token")
	}

	var active int64
	err = svc.DB.Model(&models.AdminSession{}).
		Where("admin_id = ? AND is_active = ?", admin.ID, true).
		Count(&active).Error
	if err != nil {
		t.Fatalf("count active sessions: %v", err)
	}
	if active != 1 {
		t.Fatalf("want exactly 1 active session, got %d", active)
	}

	// The superseded token must stop resolving while the new one works.
	if _, err := svc.Resolve(first.SessionToken); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("superseded token resolved: %v", err)
	}
	got, err := svc.Resolve(second.SessionToken)
	if err != nil {
		t.Fatalf("resolve current token: %v", err)
	}
	if got.ID != admin.ID {
		t.Errorf("resolved wrong admin: got %d, want %d", got.ID, admin.ID)
	}
}

func TestResolveExpiredSession(t *testing.T) {
	svc, admin := newAuthFixture(t)

	session, err := svc.CreateSession(admin.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	err = svc.DB.Model(&models.AdminSession{}).
		Where("id = ?", session.ID).
		Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error
	if err != nil {
		t.Fatalf("expire session: %v", err)
	}

	if _, err := svc.Resolve(session.SessionToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for expired token, got %v", err)
	}
}

func TestSessionTokenShape(t *testing.T) {
	svc, admin := newAuthFixture(t)

	session, err := svc.CreateSession(admin.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(session.SessionToken) < 32 {
		t.Fatalf("token too short: %d chars", len(session.SessionToken))
	}
	for _, r := range session.SessionToken {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			t.Fatalf("token contains non-alphanumeric rune %q", r)
		}
	}
	if got := time.Until(session.ExpiresAt); got < 6*24*time.Hour || got > 8*24*time.Hour {
		t.Errorf("expiry not about a week out: %v", got)
	}
}

func TestDeactivateAll(t *testing.T) {
	svc, admin := newAuthFixture(t)

	session, err := svc.CreateSession(admin.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := svc.DeactivateAll(admin.ID); err != nil {
		t.Fatalf("DeactivateAll: %v", err)
	}
	if _, err := svc.Resolve(session.SessionToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("token resolved after logout: %v", err)
	}
}

func TestCreateAdminDuplicate(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.CreateAdmin("admin", "other"); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation for duplicate username, got %v", err)
	}
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/splitconsole/internal/models"
)

// memStorage is an in-memory MemberStorage for tests.
type memStorage struct {
	members map[string]*models.Member
}

func (m *memStorage) CreateMember(ctx context.Context, member *models.Member) error {
	m.members[member.Name] = member
	return nil
}

func (m *memStorage) GetMember(ctx context.Context, name string) (*models.Member, error) {
	return m.members[name], nil
}

func newTestAuthenticator() *PasswordAuthenticator {
	return NewPasswordAuthenticator(
		&memStorage{members: make(map[string]*models.Member)},
		models.Group{Name: "Flat", Members: []string{"Alice", "Bob"}},
	)
}

func TestPasswordAuthenticator(t *testing.T) {
	a := newTestAuthenticator()
	ctx := context.Background()

	t.Run("Register rejects non-members", func(t *testing.T) {
		if _, err := a.Register(ctx, "Mallory", "password123"); !errors.Is(err, ErrNotAMember) {
			t.Errorf("expected ErrNotAMember, got %v", err)
		}
	})

	t.Run("Register rejects weak passwords", func(t *testing.T) {
		if _, err := a.Register(ctx, "Alice", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("Register then Authenticate", func(t *testing.T) {
		account, err := a.Register(ctx, "Alice", "password123")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if account.PasswordHash == "password123" {
			t.Error("password stored in clear text")
		}

		got, err := a.Authenticate(ctx, "Alice", "password123")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != account.ID {
			t.Errorf("authenticated account %s, want %s", got.ID, account.ID)
		}
	})

	t.Run("Register twice fails", func(t *testing.T) {
		if _, err := a.Register(ctx, "Alice", "password456"); !errors.Is(err, ErrAlreadyRegistered) {
			t.Errorf("expected ErrAlreadyRegistered, got %v", err)
		}
	})

	t.Run("Authenticate rejects wrong password and unknown member", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "Alice", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := a.Authenticate(ctx, "Bob", "password123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for unregistered member, got %v", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	member := models.NewMember("Alice", "hash")

	token, err := m.Generate(member)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Member != "Alice" || claims.Subject != member.ID {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := NewJWTManager("other-secret", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	expired, err := NewJWTManager("test-secret", -time.Minute).Generate(member)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := m.Validate(expired); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}

	if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

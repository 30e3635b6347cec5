package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/splitconsole/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid member name or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrAlreadyRegistered  = errors.New("member already registered")
	ErrNotAMember         = errors.New("not a member of this group")
)

// MemberStorage defines the interface for credential persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type MemberStorage interface {
	CreateMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, name string) (*models.Member, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage MemberStorage
	group   models.Group
}

// NewPasswordAuthenticator creates a new password-based authenticator for group.
func NewPasswordAuthenticator(storage MemberStorage, group models.Group) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		group:   group,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register stores a hashed password for a configured member.
func (a *PasswordAuthenticator) Register(ctx context.Context, member, credential string) (*models.Member, error) {
	if !a.group.Has(member) {
		return nil, ErrNotAMember
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	existing, err := a.storage.GetMember(ctx, member)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.NewMember(member, string(hashedPassword))
	if err := a.storage.CreateMember(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return account, nil
}

// Authenticate verifies the member name and password, returning the account if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, member, credential string) (*models.Member, error) {
	if !a.group.Has(member) {
		return nil, ErrInvalidCredentials
	}

	account, err := a.storage.GetMember(ctx, member)
	if err != nil || account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

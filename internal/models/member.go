package models

import (
	"time"

	"github.com/google/uuid"
)

// Member represents login credentials for one configured group member.
//
// Registration is only allowed for names in the configured Group.
type Member struct {
	// ID is the unique identifier for the account (UUID format).
	ID string

	// Name is the member name as it appears in the group configuration.
	Name string

	// PasswordHash is the bcrypt hash of the member's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewMember builds a member account with a fresh ID.
func NewMember(name, passwordHash string) *Member {
	return &Member{
		ID:           uuid.New().String(),
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}

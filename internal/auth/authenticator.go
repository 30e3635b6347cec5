package auth

import (
	"context"

	"github.com/mmynk/splitconsole/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods
// without changing the service layer code.
type Authenticator interface {
	// Register creates credentials for a configured group member.
	// Returns the created account or an error if registration fails.
	Register(ctx context.Context, member, credential string) (*models.Member, error)

	// Authenticate verifies the member's credentials and returns the account if successful.
	Authenticate(ctx context.Context, member, credential string) (*models.Member, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

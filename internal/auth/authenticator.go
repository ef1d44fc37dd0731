// Package auth registers and authenticates the members of a household.
package auth

import (
	"context"

	"github.com/mmynk/fintrack/internal/models"
)

// Authenticator verifies household members.
// Implementations other than passwords (passkeys, OAuth) can be swapped in
// without touching the RPC layer.
type Authenticator interface {
	// Register creates a member with the given credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the member whose credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// Lookup returns a registered member by id.
	Lookup(ctx context.Context, userID string) (*models.User, error)

	// ValidateCredential checks the credential against the implementation's rules.
	ValidateCredential(credential string) error
}

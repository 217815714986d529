package auth

import (
	"context"

	"github.com/billetera/billetera/internal/models"
)

// Authenticator defines the interface for identity-provider implementations.
// The rest of the application only needs a stable user ID and a verified
// email per request, so a hosted provider could be swapped in behind this
// interface without touching the service layer.
type Authenticator interface {
	// Register creates a new user account.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, email, firstName, lastName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}

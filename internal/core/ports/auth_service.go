package ports

import (
	"context"

	"github.com/learning/securedapp/internal/core/domain"
)

// AuthService authenticates credentials and issues tokens.
type AuthService interface {
	// Login verifies the password against the stored hash and returns a
	// signed token carrying the user's roles and flattened permissions.
	// Disabled accounts and bad passwords both yield
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

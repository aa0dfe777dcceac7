package ports

import (
	"context"

	"github.com/learning/securedapp/internal/core/domain"
)

// SecurityService orchestrates user and role management. It is the single
// point where password encoding happens before persistence: no caller hands
// a plaintext password to a repository.
type SecurityService interface {
	// GetAllUsers returns every user with Roles populated from the catalog.
	// The full scan is a documented limitation; there is no pagination.
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	GetAllRoles(ctx context.Context) ([]*domain.Role, error)
	// GetUserByID returns domain.ErrUserNotFound when the id is unknown.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	// CreateUser validates the candidate, encodes its plaintext password and
	// persists it. Returns *domain.ValidationError on invalid input and
	// domain.ErrDuplicateUser when the store's uniqueness constraint fires.
	CreateUser(ctx context.Context, candidate *domain.User) (*domain.User, error)
	// UpdateUser re-validates and persists an existing user. A blank
	// password keeps the stored hash; a non-blank one is re-encoded. The
	// submitted role selection is merged against the current catalog.
	UpdateUser(ctx context.Context, candidate *domain.User) (*domain.User, error)
	CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error)
}

package ports

import (
	"context"

	"github.com/learning/securedapp/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// The store backs username with a unique index; Create and Update return
// domain.ErrDuplicateUser when that constraint is violated, which is the
// authoritative uniqueness check (the validator's lookup is advisory).
type UserRepository interface {
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsername returns domain.ErrUserNotFound when no account holds
	// the username.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}

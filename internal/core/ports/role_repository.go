package ports

import (
	"context"

	"github.com/learning/securedapp/internal/core/domain"
)

// RoleRepository defines persistence operations for the role catalog.
type RoleRepository interface {
	FindAll(ctx context.Context) ([]*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
}

package ports

import (
	"context"

	"github.com/learning/securedapp/internal/core/domain"
)

// CategoryService manages the category reference data.
type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/learning/securedapp/internal/core/domain"
	"github.com/learning/securedapp/internal/core/ports"
)

// CategoryService implements ports.CategoryService.
type CategoryService struct {
	categories ports.CategoryRepository
	log        zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, log: log}
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	created, err := s.categories.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, category.ID); err != nil {
		return nil, err
	}
	return s.categories.Update(ctx, category)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

func validateCategory(category *domain.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "name", Code: domain.CodeRequired},
		}}
	}
	return nil
}

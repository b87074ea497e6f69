package service

import (
	"context"
	"errors"

	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
	"github.com/vivahgalaxy/pos-api/pkg/apperror"
	"github.com/vivahgalaxy/pos-api/pkg/utils"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a category with a slug derived from its name
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	slug := utils.Slugify(name)
	if slug == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{
		Name: name,
		Slug: slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns all categories
func (s *CategoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*entity.Category{}
	}
	return categories, nil
}

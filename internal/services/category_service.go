package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/expense-tracking-api/internal/config"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/repository"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

// CategoryService provides business logic for categories.
type CategoryService struct {
	categories repository.CategoryRepository
	validator  *validation.Validator
	defaults   config.DefaultsConfig
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories repository.CategoryRepository, validator *validation.Validator, defaults config.DefaultsConfig) *CategoryService {
	return &CategoryService{
		categories: categories,
		validator:  validator,
		defaults:   defaults,
	}
}

// List returns a page of the project's categories.
func (s *CategoryService) List(ctx context.Context, project *models.Project, query ListQuery) ([]models.Category, int64, error) {
	categories, total, err := s.categories.List(ctx, repository.CategoryFilter{
		ProjectID:      project.ID,
		IncludeDeleted: query.IncludeDeleted,
		Sort:           query.Sort,
		Direction:      query.Direction,
		Pagination:     query.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

// Create adds a category to project. A category claiming default evicts the
// previous default.
func (s *CategoryService) Create(ctx context.Context, project *models.Project, fields validation.Fields) (*models.Category, error) {
	fields = fields.With("project_id", project.ID)
	if err := s.validator.Check(ctx, categoryRules(true), fields); err != nil {
		return nil, err
	}

	title, _ := fields.String("title")
	color, ok := fields.String("color")
	if !ok {
		color = s.defaults.CategoryColor
	}
	isDefault, _ := fields.Bool("is_default")

	category := &models.Category{
		Title:     title,
		Color:     color,
		IsDefault: isDefault,
		ProjectID: project.ID,
		Status:    models.StatusActive,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// Update changes category. Unsetting the only default category fails
// validation.
func (s *CategoryService) Update(ctx context.Context, category *models.Category, fields validation.Fields) (*models.Category, error) {
	fields = fields.With("project_id", category.ProjectID).With("id", category.ID)
	if err := s.validator.Check(ctx, categoryRules(false), fields); err != nil {
		return nil, err
	}

	columns := map[string]any{}
	pickStrings(fields, columns, "title", "color")
	if isDefault, ok := fields.Bool("is_default"); ok {
		columns["is_default"] = isDefault
	}

	updated, err := s.categories.Update(ctx, category.ID, columns)
	if err != nil {
		return nil, lookupError(err, ErrCategoryNotFound, "update category")
	}
	return updated, nil
}

// Delete archives category. The default category and categories with live
// entries are kept.
func (s *CategoryService) Delete(ctx context.Context, category *models.Category) error {
	if category.IsDefault {
		return ErrDefaultCategoryDelete
	}

	count, err := s.categories.CountEntries(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("failed to count category entries: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.categories.Delete(ctx, category.ID); err != nil {
		return lookupError(err, ErrCategoryNotFound, "delete category")
	}
	return nil
}

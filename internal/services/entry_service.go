package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/repository"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

// EntryQuery holds filtering options for listing entries.
type EntryQuery struct {
	ListQuery
	CategoryID *uint64
	Period     Period
	MinPrice   *int64
	MaxPrice   *int64
}

// EntryService provides business logic for entries.
type EntryService struct {
	entries    repository.EntryRepository
	categories repository.CategoryRepository
	validator  *validation.Validator
}

// NewEntryService creates a new EntryService.
func NewEntryService(entries repository.EntryRepository, categories repository.CategoryRepository, validator *validation.Validator) *EntryService {
	return &EntryService{
		entries:    entries,
		categories: categories,
		validator:  validator,
	}
}

// List returns a page of the project's entries.
func (s *EntryService) List(ctx context.Context, project *models.Project, query EntryQuery) ([]models.Entry, int64, error) {
	entries, total, err := s.entries.List(ctx, repository.EntryFilter{
		ProjectID:      project.ID,
		CategoryID:     query.CategoryID,
		Dates:          query.Period.dateRange(),
		MinPrice:       query.MinPrice,
		MaxPrice:       query.MaxPrice,
		IncludeDeleted: query.IncludeDeleted,
		Sort:           query.Sort,
		Direction:      query.Direction,
		Pagination:     query.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, total, nil
}

// Create records an entry in project. Without a category_id the entry is
// filed under the project's default category.
func (s *EntryService) Create(ctx context.Context, project *models.Project, fields validation.Fields) (*models.Entry, error) {
	fields = fields.With("project_id", project.ID)
	if !fields.Has("category_id") {
		id, err := s.defaultCategoryID(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		if id != 0 {
			fields = fields.With("category_id", id)
		}
	}

	if err := s.validator.Check(ctx, entryRules(true), fields); err != nil {
		return nil, err
	}

	title, _ := fields.String("title")
	price, _ := fields.Int64("price")
	date, _ := fields.Date("date")
	categoryID, _ := fields.Uint64("category_id")

	entry := &models.Entry{
		Title:      title,
		Price:      price,
		Date:       date,
		ProjectID:  project.ID,
		CategoryID: categoryID,
		Status:     models.StatusActive,
	}
	if content, ok := fields.String("content"); ok {
		entry.Content = &content
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

func (s *EntryService) defaultCategoryID(ctx context.Context, projectID uint64) (uint64, error) {
	categories, err := s.categories.ListByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range categories {
		if c.IsDefault {
			return c.ID, nil
		}
	}
	return 0, nil
}

// Update changes entry. A new category must belong to the entry's project.
func (s *EntryService) Update(ctx context.Context, entry *models.Entry, fields validation.Fields) (*models.Entry, error) {
	fields = fields.With("project_id", entry.ProjectID).With("id", entry.ID)
	if err := s.validator.Check(ctx, entryRules(false), fields); err != nil {
		return nil, err
	}

	columns := map[string]any{}
	pickStrings(fields, columns, "title", "content")
	if fields.Null("content") {
		columns["content"] = nil
	}
	if price, ok := fields.Int64("price"); ok {
		columns["price"] = price
	}
	if date, ok := fields.Date("date"); ok {
		columns["date"] = date
	}
	if categoryID, ok := fields.Uint64("category_id"); ok {
		columns["category_id"] = categoryID
	}

	updated, err := s.entries.Update(ctx, entry.ID, columns)
	if err != nil {
		return nil, lookupError(err, ErrEntryNotFound, "update entry")
	}
	return updated, nil
}

// Delete archives entry.
func (s *EntryService) Delete(ctx context.Context, entry *models.Entry) error {
	if err := s.entries.Delete(ctx, entry.ID); err != nil {
		return lookupError(err, ErrEntryNotFound, "delete entry")
	}
	return nil
}

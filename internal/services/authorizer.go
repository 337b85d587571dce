package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/repository"
)

// Authorizer decides whether a principal may act on a project or on a
// resource nested under one. Existence is always checked before
// membership, so an unknown id is reported as not found even to outsiders.
type Authorizer struct {
	projects   repository.ProjectRepository
	categories repository.CategoryRepository
	entries    repository.EntryRepository
}

// NewAuthorizer creates a new Authorizer.
func NewAuthorizer(projects repository.ProjectRepository, categories repository.CategoryRepository, entries repository.EntryRepository) *Authorizer {
	return &Authorizer{
		projects:   projects,
		categories: categories,
		entries:    entries,
	}
}

// IsMember reports whether principalID belongs to projectID.
func (a *Authorizer) IsMember(ctx context.Context, principalID, projectID uint64) (bool, error) {
	ok, err := a.projects.IsMember(ctx, projectID, principalID)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return ok, nil
}

// AuthorizeProject resolves a live project the principal is a member of.
func (a *Authorizer) AuthorizeProject(ctx context.Context, principalID, projectID uint64) (*models.Project, error) {
	project, err := a.projects.FindByID(ctx, projectID, false)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, "find project")
	}

	ok, err := a.IsMember(ctx, principalID, project.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return project, nil
}

// AuthorizeCategory resolves a live category and authorizes its project.
func (a *Authorizer) AuthorizeCategory(ctx context.Context, principalID, categoryID uint64) (*models.Category, error) {
	category, err := a.categories.FindByID(ctx, categoryID, false)
	if err != nil {
		return nil, lookupError(err, ErrCategoryNotFound, "find category")
	}

	if _, err := a.AuthorizeProject(ctx, principalID, category.ProjectID); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// AuthorizeEntry resolves a live entry and authorizes its project.
func (a *Authorizer) AuthorizeEntry(ctx context.Context, principalID, entryID uint64) (*models.Entry, error) {
	entry, err := a.entries.FindByID(ctx, entryID, false)
	if err != nil {
		return nil, lookupError(err, ErrEntryNotFound, "find entry")
	}

	if _, err := a.AuthorizeProject(ctx, principalID, entry.ProjectID); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

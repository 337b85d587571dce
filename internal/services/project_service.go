package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/expense-tracking-api/internal/config"
	"github.com/yukikurage/expense-tracking-api/internal/events"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/repository"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

// ProjectService provides business logic for projects and their members.
type ProjectService struct {
	projects   repository.ProjectRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	validator  *validation.Validator
	publisher  events.Publisher
	defaults   config.DefaultsConfig
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projects repository.ProjectRepository,
	categories repository.CategoryRepository,
	users repository.UserRepository,
	validator *validation.Validator,
	publisher events.Publisher,
	defaults config.DefaultsConfig,
) *ProjectService {
	return &ProjectService{
		projects:   projects,
		categories: categories,
		users:      users,
		validator:  validator,
		publisher:  publisher,
		defaults:   defaults,
	}
}

// ProjectDetails is a project with its members and live categories.
type ProjectDetails struct {
	Project    *models.Project
	Members    []models.User
	Categories []models.Category
}

// List returns the principal's live projects, or the archived ones.
func (s *ProjectService) List(ctx context.Context, principalID uint64, archived bool, query ListQuery) ([]models.Project, int64, error) {
	projects, total, err := s.projects.List(ctx, repository.ProjectFilter{
		MemberID:   principalID,
		Archived:   archived,
		Sort:       query.Sort,
		Direction:  query.Direction,
		Pagination: query.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Create creates a project owned by the principal together with its default
// category.
func (s *ProjectService) Create(ctx context.Context, principalID uint64, fields validation.Fields) (*ProjectDetails, error) {
	fields = upperField(fields, "currency")
	if err := s.validator.Check(ctx, projectRules(principalID, true), fields); err != nil {
		return nil, err
	}

	title, _ := fields.String("title")
	currency, _ := fields.String("currency")

	project := &models.Project{
		Title:    title,
		Currency: currency,
		Status:   models.StatusActive,
	}
	category := &models.Category{
		Title:  s.defaults.CategoryTitle,
		Color:  s.defaults.CategoryColor,
		Status: models.StatusActive,
	}

	if err := s.projects.CreateWithDefaultCategory(ctx, project, principalID, category); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	events.Emit(ctx, s.publisher, events.ProjectCreated, map[string]any{
		"project_id": project.ID,
		"owner_id":   principalID,
	})

	return s.Details(ctx, project)
}

// Details loads the members and live categories of project.
func (s *ProjectService) Details(ctx context.Context, project *models.Project) (*ProjectDetails, error) {
	members, err := s.projects.ListMembers(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}

	categories, err := s.categories.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project categories: %w", err)
	}

	return &ProjectDetails{
		Project:    project,
		Members:    members,
		Categories: categories,
	}, nil
}

// Update changes the title and currency of project.
func (s *ProjectService) Update(ctx context.Context, principalID uint64, project *models.Project, fields validation.Fields) (*models.Project, error) {
	fields = upperField(fields, "currency").With("id", project.ID)
	if err := s.validator.Check(ctx, projectRules(principalID, false), fields); err != nil {
		return nil, err
	}

	columns := map[string]any{}
	pickStrings(fields, columns, "title", "currency")

	updated, err := s.projects.Update(ctx, project.ID, columns)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, "update project")
	}
	return updated, nil
}

// Delete archives project.
func (s *ProjectService) Delete(ctx context.Context, project *models.Project) error {
	if err := s.projects.Delete(ctx, project.ID); err != nil {
		return lookupError(err, ErrProjectNotFound, "delete project")
	}
	return nil
}

// AddMember grants userID access to project.
func (s *ProjectService) AddMember(ctx context.Context, project *models.Project, userID uint64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return lookupError(err, ErrUserNotFound, "find user")
	}

	member, err := s.projects.IsMember(ctx, project.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if member {
		return validation.NewError("user_id", "already_in_project")
	}

	if err := s.projects.AddMember(ctx, project.ID, userID); err != nil {
		return fmt.Errorf("failed to add project member: %w", err)
	}

	events.Emit(ctx, s.publisher, events.ProjectMemberAdded, map[string]any{
		"project_id": project.ID,
		"user_id":    userID,
	})
	return nil
}

// RemoveMember revokes userID's access to project. Removing a user who is
// not a member succeeds without changes.
func (s *ProjectService) RemoveMember(ctx context.Context, project *models.Project, userID uint64) error {
	member, err := s.projects.IsMember(ctx, project.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return nil
	}

	if err := s.projects.RemoveMember(ctx, project.ID, userID); err != nil {
		return fmt.Errorf("failed to remove project member: %w", err)
	}

	events.Emit(ctx, s.publisher, events.ProjectMemberRemoved, map[string]any{
		"project_id": project.ID,
		"user_id":    userID,
	})
	return nil
}

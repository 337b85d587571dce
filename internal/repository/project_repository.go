package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/expense-tracking-api/internal/database"
	"github.com/yukikurage/expense-tracking-api/internal/models"
)

var (
	// ErrCreateProject is returned when inserting the project fails inside the creation transaction.
	ErrCreateProject = errors.New("project repository: create project failed")
	// ErrAddOwner is returned when inserting the owner's membership fails inside the creation transaction.
	ErrAddOwner = errors.New("project repository: add owner failed")
	// ErrCreateDefaultCategory is returned when inserting the default category fails inside the creation transaction.
	ErrCreateDefaultCategory = errors.New("project repository: create default category failed")
)

var projectSortColumns = []string{"id", "title", "currency", "created_at", "updated_at"}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db    *gorm.DB
	store store[models.Project]
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{
		db:    db,
		store: store[models.Project]{db: db, table: "projects", softDelete: true},
	}
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64, includeDeleted bool) (*models.Project, error) {
	return r.store.find(ctx, id, includeDeleted)
}

// CreateWithDefaultCategory creates the project, its first member and its default category atomically.
func (r *GormProjectRepository) CreateWithDefaultCategory(ctx context.Context, project *models.Project, ownerID uint64, category *models.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProject, err)
		}

		member := &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    ownerID,
			JoinedAt:  time.Now().UTC(),
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrAddOwner, err)
		}

		category.ProjectID = project.ID
		category.IsDefault = true
		if err := tx.Create(category).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateDefaultCategory, err)
		}

		return EnforceSingleDefault(tx, category)
	})
}

// Update applies a partial update to a live project
func (r *GormProjectRepository) Update(ctx context.Context, id uint64, columns map[string]any) (*models.Project, error) {
	return r.store.update(ctx, id, columns)
}

// Delete soft deletes a project
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.store.delete(ctx, id)
}

// List retrieves the live or archived projects of a member
func (r *GormProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]models.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{}).
		Joins("JOIN project_user ON project_user.project_id = projects.id").
		Where("project_user.user_id = ?", filter.MemberID)

	if filter.Archived {
		query = query.Scopes(database.Deleted("projects"))
	} else {
		query = query.Scopes(database.Active("projects", false))
	}

	var projects []models.Project
	total, err := paginate(query, filter.Pagination, &projects,
		database.OrderBy("projects", filter.Sort, filter.Direction, projectSortColumns))
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// IsMember reports whether the user belongs to the project
func (r *GormProjectRepository) IsMember(ctx context.Context, projectID, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddMember adds a user to a project
func (r *GormProjectRepository) AddMember(ctx context.Context, projectID, userID uint64) error {
	return r.db.WithContext(ctx).Create(&models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		JoinedAt:  time.Now().UTC(),
	}).Error
}

// RemoveMember removes a user from a project. Removing a non-member is not an error.
func (r *GormProjectRepository) RemoveMember(ctx context.Context, projectID, userID uint64) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// ListMembers lists the users of a project
func (r *GormProjectRepository) ListMembers(ctx context.Context, projectID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN project_user ON project_user.user_id = users.id").
		Where("project_user.project_id = ?", projectID).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

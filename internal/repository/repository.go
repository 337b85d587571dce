package repository

import (
	"context"
	"time"

	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
)

// Missing rows are reported as gorm.ErrRecordNotFound by every method.

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// FindByID finds a project by ID
	FindByID(ctx context.Context, id uint64, includeDeleted bool) (*models.Project, error)

	// CreateWithDefaultCategory creates a project, the owner's membership and
	// the project's default category within a single transaction.
	CreateWithDefaultCategory(ctx context.Context, project *models.Project, ownerID uint64, category *models.Category) error

	// Update applies a partial update and touches updated_at
	Update(ctx context.Context, id uint64, columns map[string]any) (*models.Project, error)

	// Delete soft deletes a project
	Delete(ctx context.Context, id uint64) error

	// List retrieves the projects a user is a member of
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, int64, error)

	// IsMember reports whether the user belongs to the project
	IsMember(ctx context.Context, projectID, userID uint64) (bool, error)

	// AddMember adds a user to a project
	AddMember(ctx context.Context, projectID, userID uint64) error

	// RemoveMember removes a user from a project
	RemoveMember(ctx context.Context, projectID, userID uint64) error

	// ListMembers lists the users of a project ordered by id
	ListMembers(ctx context.Context, projectID uint64) ([]models.User, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	MemberID   uint64
	Archived   bool
	Sort       string
	Direction  string
	Pagination utils.PaginationParams
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	FindByID(ctx context.Context, id uint64, includeDeleted bool) (*models.Category, error)

	// Create inserts a category and enforces the single default category
	// rule in the same transaction.
	Create(ctx context.Context, category *models.Category) error

	// Update applies a partial update and enforces the single default
	// category rule in the same transaction.
	Update(ctx context.Context, id uint64, columns map[string]any) (*models.Category, error)

	Delete(ctx context.Context, id uint64) error

	// ListByProject returns every active category of a project ordered by id
	ListByProject(ctx context.Context, projectID uint64) ([]models.Category, error)

	List(ctx context.Context, filter CategoryFilter) ([]models.Category, int64, error)

	// CountEntries counts the active entries filed under a category
	CountEntries(ctx context.Context, categoryID uint64) (int64, error)
}

// CategoryFilter holds filtering options for listing categories
type CategoryFilter struct {
	ProjectID      uint64
	IncludeDeleted bool
	Sort           string
	Direction      string
	Pagination     utils.PaginationParams
}

// EntryRepository defines the interface for entry data access
type EntryRepository interface {
	// FindByID finds an entry with its category preloaded
	FindByID(ctx context.Context, id uint64, includeDeleted bool) (*models.Entry, error)

	Create(ctx context.Context, entry *models.Entry) error

	Update(ctx context.Context, id uint64, columns map[string]any) (*models.Entry, error)

	Delete(ctx context.Context, id uint64) error

	List(ctx context.Context, filter EntryFilter) ([]models.Entry, int64, error)

	// SumByCategory sums active entry prices per category id
	SumByCategory(ctx context.Context, projectID uint64, r DateRange) (map[uint64]int64, error)
}

// DateRange is a half-open interval [From, Until). Nil bounds are open.
type DateRange struct {
	From  *time.Time
	Until *time.Time
}

// EntryFilter holds filtering options for listing entries
type EntryFilter struct {
	ProjectID      uint64
	CategoryID     *uint64
	Dates          DateRange
	MinPrice       *int64
	MaxPrice       *int64
	IncludeDeleted bool
	Sort           string
	Direction      string
	Pagination     utils.PaginationParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	Update(ctx context.Context, id uint64, columns map[string]any) (*models.User, error)

	// Delete removes a user together with all memberships
	Delete(ctx context.Context, id uint64) error

	// ListConfirmed lists activated accounts
	ListConfirmed(ctx context.Context, pagination utils.PaginationParams) ([]models.User, int64, error)

	// Confirm activates the account when token matches
	Confirm(ctx context.Context, id uint64, token string) error
}

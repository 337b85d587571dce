package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/expense-tracking-api/internal/database"
	"github.com/yukikurage/expense-tracking-api/internal/models"
)

var categorySortColumns = []string{"id", "title", "created_at", "updated_at"}

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db    *gorm.DB
	store store[models.Category]
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{
		db:    db,
		store: store[models.Category]{db: db, table: "categories", softDelete: true},
	}
}

// FindByID finds a category by ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uint64, includeDeleted bool) (*models.Category, error) {
	return r.store.find(ctx, id, includeDeleted)
}

// Create inserts a category while holding the project lock
func (r *GormCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProject(tx, category.ProjectID); err != nil {
			return err
		}
		if err := tx.Create(category).Error; err != nil {
			return err
		}
		return EnforceSingleDefault(tx, category)
	})
}

// Update applies a partial update while holding the project lock
func (r *GormCategoryRepository) Update(ctx context.Context, id uint64, columns map[string]any) (*models.Category, error) {
	var updated *models.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := r.store.with(tx)

		current, err := txStore.find(ctx, id, false)
		if err != nil {
			return err
		}
		if err := lockProject(tx, current.ProjectID); err != nil {
			return err
		}

		updated, err = txStore.update(ctx, id, columns)
		if err != nil {
			return err
		}
		return EnforceSingleDefault(tx, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft deletes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, id uint64) error {
	return r.store.delete(ctx, id)
}

// ListByProject returns the live categories of a project in id order
func (r *GormCategoryRepository) ListByProject(ctx context.Context, projectID uint64) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Scopes(database.Active("categories", false)).
		Where("project_id = ?", projectID).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// List retrieves a page of a project's categories
func (r *GormCategoryRepository) List(ctx context.Context, filter CategoryFilter) ([]models.Category, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Category{}).
		Scopes(database.Active("categories", filter.IncludeDeleted)).
		Where("project_id = ?", filter.ProjectID)

	var categories []models.Category
	total, err := paginate(query, filter.Pagination, &categories,
		database.OrderBy("categories", filter.Sort, filter.Direction, categorySortColumns))
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// CountEntries counts the live entries of a category
func (r *GormCategoryRepository) CountEntries(ctx context.Context, categoryID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Entry{}).
		Scopes(database.Active("entries", false)).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

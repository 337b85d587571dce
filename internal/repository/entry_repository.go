package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/expense-tracking-api/internal/database"
	"github.com/yukikurage/expense-tracking-api/internal/models"
)

var entrySortColumns = []string{"id", "title", "price", "date", "created_at", "updated_at"}

// GormEntryRepository is a GORM implementation of EntryRepository
type GormEntryRepository struct {
	db    *gorm.DB
	store store[models.Entry]
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &GormEntryRepository{
		db:    db,
		store: store[models.Entry]{db: db, table: "entries", softDelete: true, preload: []string{"Category"}},
	}
}

// FindByID finds an entry by ID with its category
func (r *GormEntryRepository) FindByID(ctx context.Context, id uint64, includeDeleted bool) (*models.Entry, error) {
	return r.store.find(ctx, id, includeDeleted)
}

// Create inserts an entry and loads its category
func (r *GormEntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	if err := r.store.create(ctx, entry); err != nil {
		return err
	}
	return r.db.WithContext(ctx).First(&entry.Category, entry.CategoryID).Error
}

// Update applies a partial update to a live entry
func (r *GormEntryRepository) Update(ctx context.Context, id uint64, columns map[string]any) (*models.Entry, error) {
	return r.store.update(ctx, id, columns)
}

// Delete soft deletes an entry
func (r *GormEntryRepository) Delete(ctx context.Context, id uint64) error {
	return r.store.delete(ctx, id)
}

func (r *GormEntryRepository) filtered(ctx context.Context, projectID uint64, includeDeleted bool, dates DateRange) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Entry{}).
		Scopes(database.Active("entries", includeDeleted)).
		Where("entries.project_id = ?", projectID)

	if dates.From != nil {
		query = query.Where("entries.date >= ?", *dates.From)
	}
	if dates.Until != nil {
		query = query.Where("entries.date < ?", *dates.Until)
	}
	return query
}

func withCategory(db *gorm.DB) *gorm.DB {
	return db.Preload("Category")
}

// List retrieves entries with filtering and pagination
func (r *GormEntryRepository) List(ctx context.Context, filter EntryFilter) ([]models.Entry, int64, error) {
	query := r.filtered(ctx, filter.ProjectID, filter.IncludeDeleted, filter.Dates)

	if filter.CategoryID != nil {
		query = query.Where("entries.category_id = ?", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		query = query.Where("entries.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("entries.price <= ?", *filter.MaxPrice)
	}

	var entries []models.Entry
	total, err := paginate(query, filter.Pagination, &entries,
		database.OrderBy("entries", filter.Sort, filter.Direction, entrySortColumns),
		withCategory)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// SumByCategory sums the prices of live entries in the range, per category
func (r *GormEntryRepository) SumByCategory(ctx context.Context, projectID uint64, dates DateRange) (map[uint64]int64, error) {
	var rows []struct {
		CategoryID uint64
		Total      int64
	}

	err := r.filtered(ctx, projectID, false, dates).
		Select("entries.category_id AS category_id, COALESCE(SUM(entries.price), 0) AS total").
		Group("entries.category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		totals[row.CategoryID] = row.Total
	}
	return totals, nil
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/expense-tracking-api/internal/database"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
)

// store implements the CRUD shared by every entity. Soft deletable tables
// carry status and deleted_at columns.
type store[T any] struct {
	db         *gorm.DB
	table      string
	softDelete bool
	preload    []string
}

// with returns a copy bound to tx.
func (s store[T]) with(tx *gorm.DB) store[T] {
	s.db = tx
	return s
}

func (s store[T]) find(ctx context.Context, id uint64, includeDeleted bool) (*T, error) {
	var out T
	q := s.db.WithContext(ctx)
	if s.softDelete {
		q = q.Scopes(database.Active(s.table, includeDeleted))
	}
	for _, p := range s.preload {
		q = q.Preload(p)
	}

	if err := q.First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (s store[T]) create(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// update changes only the given columns of a live row and always touches
// updated_at, even when nothing else changes.
func (s store[T]) update(ctx context.Context, id uint64, columns map[string]any) (*T, error) {
	if _, err := s.find(ctx, id, false); err != nil {
		return nil, err
	}

	values := make(map[string]any, len(columns)+1)
	for k, v := range columns {
		values[k] = v
	}
	values["updated_at"] = time.Now().UTC()

	if err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return s.find(ctx, id, false)
}

// delete tombstones soft deletable rows and removes the others.
func (s store[T]) delete(ctx context.Context, id uint64) error {
	if _, err := s.find(ctx, id, false); err != nil {
		return err
	}

	q := s.db.WithContext(ctx)
	if !s.softDelete {
		return q.Delete(new(T), id).Error
	}

	now := time.Now().UTC()
	return q.Model(new(T)).Where("id = ?", id).Updates(map[string]any{
		"status":     string(models.StatusDeleted),
		"deleted_at": now,
		"updated_at": now,
	}).Error
}

// paginate counts q, then loads the requested page into out. scopes such as
// ordering and preloads apply to the page query only.
func paginate[T any](q *gorm.DB, params utils.PaginationParams, out *[]T, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	base := q.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, err
	}
	if err := base.Scopes(append(scopes, database.Paginate(params))...).Find(out).Error; err != nil {
		return 0, err
	}
	return total, nil
}

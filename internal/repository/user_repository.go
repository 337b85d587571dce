package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db    *gorm.DB
	store store[models.User]
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{
		db:    db,
		store: store[models.User]{db: db, table: "users"},
	}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.create(ctx, user)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	return r.store.find(ctx, id, false)
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update to a user
func (r *GormUserRepository) Update(ctx context.Context, id uint64, columns map[string]any) (*models.User, error) {
	return r.store.update(ctx, id, columns)
}

// Delete removes the user and their memberships in a transaction
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return r.store.with(tx).delete(ctx, id)
	})
}

// ListConfirmed lists users whose account is activated
func (r *GormUserRepository) ListConfirmed(ctx context.Context, pagination utils.PaginationParams) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("confirmation_token IS NULL")

	var users []models.User
	total, err := paginate(query, pagination, &users, func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Confirm clears the confirmation token when it matches
func (r *GormUserRepository) Confirm(ctx context.Context, id uint64, token string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND confirmation_token = ?", id, token).
		Update("confirmation_token", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

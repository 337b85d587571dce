package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/expense-tracking-api/internal/models"
)

// EnforceSingleDefault clears is_default on every other category of the
// project when category claims it. A category that does not claim default
// leaves its siblings untouched. Running it twice yields the same state.
func EnforceSingleDefault(tx *gorm.DB, category *models.Category) error {
	if !category.IsDefault {
		return nil
	}

	return tx.Model(&models.Category{}).
		Where("project_id = ? AND id <> ? AND is_default = ?", category.ProjectID, category.ID, true).
		Updates(map[string]any{
			"is_default": false,
			"updated_at": time.Now().UTC(),
		}).Error
}

// lockProject serializes category writes of one project by holding the
// project row until the transaction ends. SQLite has no row locks but
// already serializes writers.
func lockProject(tx *gorm.DB, projectID uint64) error {
	if tx.Dialector.Name() == "sqlite" {
		return nil
	}

	var project models.Project
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&project, projectID).Error
}

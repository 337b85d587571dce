package database

import (
	"slices"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// Active restricts table to live rows unless includeDeleted is set.
func Active(table string, includeDeleted bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeDeleted {
			return db
		}
		return db.Where(clause.Eq{Column: clause.Column{Table: table, Name: "status"}, Value: string(models.StatusActive)})
	}
}

// Deleted restricts table to soft deleted rows.
func Deleted(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Table: table, Name: "status"}, Value: string(models.StatusDeleted)})
	}
}

// OrderBy sorts by column when it is allowed. Any other column falls back to
// id descending, whatever the requested direction.
func OrderBy(table, column, direction string, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !slices.Contains(allowed, column) {
			column, direction = "id", "desc"
		}
		desc := !strings.EqualFold(direction, "asc")
		return db.Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: column}, Desc: desc})
	}
}

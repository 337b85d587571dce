package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns []string
}

// secondaryIndexes cover the list and aggregation queries.
var secondaryIndexes = []index{
	{"entries", "idx_entries_project_date", []string{"project_id", "date"}},
	{"entries", "idx_entries_project_category", []string{"project_id", "category_id"}},
	{"categories", "idx_categories_project_default", []string{"project_id", "is_default"}},
	{"categories", "idx_categories_project_title", []string{"project_id", "title"}},
	{"projects", "idx_projects_title", []string{"title"}},
}

// AddIndexes creates the composite indexes that are missing.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range secondaryIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

package dto

import (
	"time"

	"github.com/yukikurage/expense-tracking-api/internal/models"
)

// CategoryDTO is the basic category representation
type CategoryDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// CategoryExtendedDTO adds the scalar fields of a category
type CategoryExtendedDTO struct {
	CategoryDTO
	Color     string     `json:"color"`
	IsDefault bool       `json:"is_default"`
	ProjectID uint64     `json:"project_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:    category.ID,
		Title: category.Title,
	}
}

func ToCategoryExtendedDTO(category models.Category) CategoryExtendedDTO {
	return CategoryExtendedDTO{
		CategoryDTO: ToCategoryDTO(category),
		Color:       category.Color,
		IsDefault:   category.IsDefault,
		ProjectID:   category.ProjectID,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
		DeletedAt:   category.DeletedAt,
	}
}

// ShapeCategory renders category at level. Categories have no collections,
// so Full is the same as Extended.
func ShapeCategory(category models.Category, level Level) any {
	if level == Basic {
		return ToCategoryDTO(category)
	}
	return ToCategoryExtendedDTO(category)
}

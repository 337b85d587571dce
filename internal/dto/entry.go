package dto

import (
	"time"

	"github.com/yukikurage/expense-tracking-api/internal/constants"
	"github.com/yukikurage/expense-tracking-api/internal/models"
)

// EntryDTO is the basic entry representation
type EntryDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// EntryExtendedDTO adds the scalar fields of an entry and its category
type EntryExtendedDTO struct {
	EntryDTO
	Price     int64        `json:"price"`
	Date      string       `json:"date"`
	Content   *string      `json:"content"`
	ProjectID uint64       `json:"project_id"`
	Category  *CategoryDTO `json:"category"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	DeletedAt *time.Time   `json:"deleted_at,omitempty"`
}

func ToEntryDTO(entry models.Entry) EntryDTO {
	return EntryDTO{
		ID:    entry.ID,
		Title: entry.Title,
	}
}

func ToEntryExtendedDTO(entry models.Entry) EntryExtendedDTO {
	dto := EntryExtendedDTO{
		EntryDTO:  ToEntryDTO(entry),
		Price:     entry.Price,
		Date:      entry.Date.Format(constants.DateLayout),
		Content:   entry.Content,
		ProjectID: entry.ProjectID,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
		DeletedAt: entry.DeletedAt,
	}
	// Category is only set when it was loaded
	if entry.Category.ID != 0 {
		category := ToCategoryDTO(entry.Category)
		dto.Category = &category
	}
	return dto
}

// ShapeEntry renders entry at level. Full is the same as Extended.
func ShapeEntry(entry models.Entry, level Level) any {
	if level == Basic {
		return ToEntryDTO(entry)
	}
	return ToEntryExtendedDTO(entry)
}

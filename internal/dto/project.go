package dto

import (
	"time"

	"github.com/yukikurage/expense-tracking-api/internal/models"
)

// ProjectDTO is the basic project representation
type ProjectDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// ProjectExtendedDTO adds the scalar fields of a project
type ProjectExtendedDTO struct {
	ProjectDTO
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ProjectFullDTO adds the members and live categories of a project
type ProjectFullDTO struct {
	ProjectExtendedDTO
	Members    []UserExtendedDTO     `json:"members"`
	Categories []CategoryExtendedDTO `json:"categories"`
}

func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:    project.ID,
		Title: project.Title,
	}
}

func ToProjectExtendedDTO(project models.Project) ProjectExtendedDTO {
	return ProjectExtendedDTO{
		ProjectDTO: ToProjectDTO(project),
		Currency:   project.Currency,
		CreatedAt:  project.CreatedAt,
		UpdatedAt:  project.UpdatedAt,
		DeletedAt:  project.DeletedAt,
	}
}

func ToProjectFullDTO(project models.Project, members []models.User, categories []models.Category) ProjectFullDTO {
	return ProjectFullDTO{
		ProjectExtendedDTO: ToProjectExtendedDTO(project),
		Members:            Map(members, ToUserExtendedDTO),
		Categories:         Map(categories, ToCategoryExtendedDTO),
	}
}

// ShapeProject renders project at Basic or Extended. Full needs the
// collections, see ToProjectFullDTO.
func ShapeProject(project models.Project, level Level) any {
	if level == Basic {
		return ToProjectDTO(project)
	}
	return ToProjectExtendedDTO(project)
}

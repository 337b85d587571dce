package models

import "time"

type Category struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	Title     string       `gorm:"type:varchar(255);not null" json:"title"`
	Color     string       `gorm:"type:varchar(7);not null" json:"color"`
	IsDefault bool         `gorm:"not null;default:false" json:"is_default"`
	ProjectID uint64       `gorm:"not null;index" json:"project_id"`
	Status    RecordStatus `gorm:"type:varchar(16);not null;default:active;index" json:"status"`
	DeletedAt *time.Time   `json:"deleted_at"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

package models

import "time"

type Entry struct {
	ID         uint64       `gorm:"primarykey" json:"id"`
	Title      string       `gorm:"type:varchar(255);not null" json:"title"`
	Price      int64        `gorm:"not null" json:"price"`
	Date       time.Time    `gorm:"type:date;not null" json:"date"`
	Content    *string      `gorm:"type:text" json:"content"`
	ProjectID  uint64       `gorm:"not null;index" json:"project_id"`
	CategoryID uint64       `gorm:"not null;index" json:"category_id"`
	Status     RecordStatus `gorm:"type:varchar(16);not null;default:active;index" json:"status"`
	DeletedAt  *time.Time   `json:"deleted_at"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	// Relations
	Project  Project  `gorm:"foreignKey:ProjectID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

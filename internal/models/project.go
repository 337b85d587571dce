package models

import "time"

type Project struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	Title     string       `gorm:"type:varchar(255);not null" json:"title"`
	Currency  string       `gorm:"type:varchar(3);not null" json:"currency"`
	Status    RecordStatus `gorm:"type:varchar(16);not null;default:active;index" json:"status"`
	DeletedAt *time.Time   `json:"deleted_at"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Active reports whether the project has not been soft deleted.
func (p Project) Active() bool {
	return p.Status != StatusDeleted
}

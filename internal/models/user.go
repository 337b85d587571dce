package models

import "time"

type User struct {
	ID                uint64    `gorm:"primarykey" json:"id"`
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash      string    `gorm:"type:varchar(255);not null" json:"-"`
	ConfirmationToken *string   `gorm:"type:varchar(64)" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Confirmed reports whether the account has been activated.
func (u User) Confirmed() bool {
	return u.ConfirmationToken == nil
}

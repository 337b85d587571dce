package dto

import (
	"time"

	"github.com/yukikurage/expense-tracking-api/internal/models"
)

// UserDTO is the basic user representation
type UserDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// UserExtendedDTO is shown to the account owner and to fellow project members
type UserExtendedDTO struct {
	UserDTO
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:   user.ID,
		Name: user.Name,
	}
}

// ToUserExtendedDTO converts a User model to UserExtendedDTO
func ToUserExtendedDTO(user models.User) UserExtendedDTO {
	return UserExtendedDTO{
		UserDTO:   ToUserDTO(user),
		Email:     user.Email,
		Confirmed: user.Confirmed(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// TokenResponse is returned by a successful authentication
type TokenResponse struct {
	Token string          `json:"token"`
	User  UserExtendedDTO `json:"user"`
}

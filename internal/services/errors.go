package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrForbidden is returned when the principal is not a member of the
	// project owning the resource, or acts on another user's account.
	ErrForbidden = errors.New("access denied")

	ErrDefaultCategoryDelete = errors.New("the default category cannot be deleted")
	ErrCategoryInUse         = errors.New("category still has entries")

	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrAccountNotConfirmed = errors.New("account not validated")
	ErrTokenSigning        = errors.New("failed to sign token")
	ErrInvalidConfirmation = errors.New("invalid confirmation link")
)

// lookupError maps a missing row to sentinel and wraps anything else with
// the failed action.
func lookupError(err, sentinel error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

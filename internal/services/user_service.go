package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yukikurage/expense-tracking-api/internal/events"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/repository"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

// UserService handles registration and account management.
type UserService struct {
	users      repository.UserRepository
	validator  *validation.Validator
	publisher  events.Publisher
	bcryptCost int
	baseURL    string
}

// NewUserService creates a new UserService. baseURL prefixes the
// confirmation link sent with user.registered.
func NewUserService(users repository.UserRepository, validator *validation.Validator, publisher events.Publisher, bcryptCost int, baseURL string) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		users:      users,
		validator:  validator,
		publisher:  publisher,
		bcryptCost: bcryptCost,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Register creates an account awaiting confirmation.
func (s *UserService) Register(ctx context.Context, fields validation.Fields) (*models.User, error) {
	if err := s.validator.Check(ctx, registrationRules(), fields); err != nil {
		return nil, err
	}

	name, _ := fields.String("name")
	email, _ := fields.String("email")
	password, _ := fields.String("password")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := utils.GenerateConfirmationToken()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		ConfirmationToken: &token,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	events.Emit(ctx, s.publisher, events.UserRegistered, map[string]any{
		"user_id":          user.ID,
		"email":            user.Email,
		"confirmation_url": fmt.Sprintf("%s/api/confirm/%d/%s", s.baseURL, user.ID, token),
	})

	return user, nil
}

// Confirm activates the account when token matches.
func (s *UserService) Confirm(ctx context.Context, userID uint64, token string) error {
	if err := s.users.Confirm(ctx, userID, token); err != nil {
		return lookupError(err, ErrInvalidConfirmation, "confirm user")
	}
	return nil
}

// List returns a page of confirmed users.
func (s *UserService) List(ctx context.Context, pagination utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.users.ListConfirmed(ctx, pagination)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "find user")
	}
	return user, nil
}

// self resolves the target account and requires it to be the principal's.
func (s *UserService) self(ctx context.Context, principal *models.User, userID uint64) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ID != principal.ID {
		return nil, ErrForbidden
	}
	return user, nil
}

// Update changes the principal's own account. A new password requires the
// current one in password_old.
func (s *UserService) Update(ctx context.Context, principal *models.User, userID uint64, fields validation.Fields) (*models.User, error) {
	user, err := s.self(ctx, principal, userID)
	if err != nil {
		return nil, err
	}

	fields = fields.With("id", user.ID)
	if err := s.validator.Check(ctx, userUpdateRules(user), fields); err != nil {
		return nil, err
	}

	columns := map[string]any{}
	pickStrings(fields, columns, "name", "email")
	if password, ok := fields.String("password"); ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		columns["password_hash"] = string(hash)
	}

	updated, err := s.users.Update(ctx, user.ID, columns)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "update user")
	}
	return updated, nil
}

// Delete removes the principal's own account and memberships.
func (s *UserService) Delete(ctx context.Context, principal *models.User, userID uint64) error {
	user, err := s.self(ctx, principal, userID)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return lookupError(err, ErrUserNotFound, "delete user")
	}
	return nil
}

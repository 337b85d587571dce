package services

import (
	"strings"

	"github.com/yukikurage/expense-tracking-api/internal/events"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

func (s *ServiceTestSuite) register(name string) validation.Fields {
	return validation.Fields{
		"name":                  name,
		"email":                 name + "@example.com",
		"password":              testPassword,
		"password_confirmation": testPassword,
	}
}

func (s *ServiceTestSuite) TestRegisterAndConfirm() {
	user, err := s.accounts.Register(s.ctx, s.register("carol"))
	s.Require().NoError(err)
	s.Require().NotNil(user.ConfirmationToken)
	s.Len(*user.ConfirmationToken, 32)
	s.False(user.Confirmed())

	s.Require().Len(s.publisher.events, 1)
	event := s.publisher.events[0]
	s.Equal(events.UserRegistered, event.Name)
	payload := event.Payload.(map[string]any)
	s.True(strings.HasPrefix(payload["confirmation_url"].(string), "http://localhost:8080/api/confirm/"))

	_, _, err = s.auth.Authenticate(s.ctx, "carol@example.com", testPassword)
	s.ErrorIs(err, ErrAccountNotConfirmed)

	s.ErrorIs(s.accounts.Confirm(s.ctx, user.ID, "wrong"), ErrInvalidConfirmation)
	s.Require().NoError(s.accounts.Confirm(s.ctx, user.ID, *user.ConfirmationToken))
	s.ErrorIs(s.accounts.Confirm(s.ctx, user.ID, *user.ConfirmationToken), ErrInvalidConfirmation, "tokens are single use")

	token, authed, err := s.auth.Authenticate(s.ctx, "carol@example.com", testPassword)
	s.Require().NoError(err)
	s.Equal(user.ID, authed.ID)

	principal, err := s.auth.ResolveToken(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(user.ID, principal.ID)
}

func (s *ServiceTestSuite) TestRegister_Validation() {
	s.createUser("alice")

	_, err := s.accounts.Register(s.ctx, s.register("alice"))
	s.requireValidation(err, "email", "unique")

	fields := s.register("dave").With("password_confirmation", "different1")
	_, err = s.accounts.Register(s.ctx, fields)
	s.requireValidation(err, "password", "confirmed")

	fields = s.register("erin").With("password", "short").With("password_confirmation", "short")
	_, err = s.accounts.Register(s.ctx, fields)
	s.requireValidation(err, "password", "length")

	_, err = s.accounts.Register(s.ctx, validation.Fields{"name": "x", "email": "not-an-email", "password": testPassword, "password_confirmation": testPassword})
	s.requireValidation(err, "email", "email")
}

func (s *ServiceTestSuite) TestAuthenticate() {
	alice := s.createUser("alice")

	_, _, err := s.auth.Authenticate(s.ctx, "alice@example.com", "wrong-password")
	s.ErrorIs(err, ErrInvalidCredentials)

	_, _, err = s.auth.Authenticate(s.ctx, "nobody@example.com", testPassword)
	s.ErrorIs(err, ErrInvalidCredentials)

	token, user, err := s.auth.Authenticate(s.ctx, "alice@example.com", testPassword)
	s.Require().NoError(err)
	s.Equal(alice.ID, user.ID)

	_, err = s.auth.ResolveToken(s.ctx, token+"x")
	s.ErrorIs(err, ErrInvalidToken)

	other := NewAuthService(s.users, utils.NewTokenManager("other-secret", "expensy", 0))
	_, err = other.ResolveToken(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceTestSuite) TestUserUpdate() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	_, err := s.accounts.Update(s.ctx, alice, bob.ID, validation.Fields{"name": "Robert"})
	s.ErrorIs(err, ErrForbidden)

	_, err = s.accounts.Update(s.ctx, alice, 9999, validation.Fields{"name": "Ghost"})
	s.ErrorIs(err, ErrUserNotFound)

	updated, err := s.accounts.Update(s.ctx, alice, alice.ID, validation.Fields{"name": "Alice", "email": "alice@example.com"})
	s.Require().NoError(err, "the own email does not collide")
	s.Equal("Alice", updated.Name)

	_, err = s.accounts.Update(s.ctx, alice, alice.ID, validation.Fields{"email": "bob@example.com"})
	s.requireValidation(err, "email", "unique")

	change := validation.Fields{"password": "new-password", "password_confirmation": "new-password"}
	_, err = s.accounts.Update(s.ctx, alice, alice.ID, change)
	s.requireValidation(err, "password_old", "password_old")

	_, err = s.accounts.Update(s.ctx, alice, alice.ID, change.With("password_old", testPassword))
	s.Require().NoError(err)

	_, _, err = s.auth.Authenticate(s.ctx, "alice@example.com", "new-password")
	s.NoError(err)
}

func (s *ServiceTestSuite) TestUserDelete() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	trip := s.createProject(alice, "Trip")
	s.Require().NoError(s.projects.AddMember(s.ctx, trip.Project, bob.ID))

	s.ErrorIs(s.accounts.Delete(s.ctx, alice, bob.ID), ErrForbidden)
	s.Require().NoError(s.accounts.Delete(s.ctx, bob, bob.ID))

	_, err := s.accounts.Get(s.ctx, bob.ID)
	s.ErrorIs(err, ErrUserNotFound)

	details, err := s.projects.Details(s.ctx, trip.Project)
	s.Require().NoError(err)
	s.Len(details.Members, 1)

	users, total, err := s.accounts.List(s.ctx, utils.NewPaginationParams(1, 20))
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal(alice.ID, users[0].ID)
}

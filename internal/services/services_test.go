package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/expense-tracking-api/internal/config"
	"github.com/yukikurage/expense-tracking-api/internal/database"
	"github.com/yukikurage/expense-tracking-api/internal/events"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/repository"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

const testPassword = "password123"

var testDefaults = config.DefaultsConfig{CategoryTitle: "Category 1", CategoryColor: "#419fdb"}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.events))
	for i, e := range p.events {
		names[i] = e.Name
	}
	return names
}

// ServiceTestSuite wires every service to an in-memory database
type ServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	db        *gorm.DB
	publisher *recordingPublisher

	users       repository.UserRepository
	projectRepo repository.ProjectRepository

	authorizer *Authorizer
	projects   *ProjectService
	categories *CategoryService
	entries    *EntryService
	stats      *StatsService
	accounts   *UserService
	auth       *AuthService
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	var err error
	s.ctx = context.Background()
	s.db, err = database.Open(config.DatabaseConfig{Driver: "sqlite", Name: ":memory:", LogLevel: "silent"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(s.db))

	s.publisher = &recordingPublisher{}
	validator := validation.New(s.db)

	s.users = repository.NewUserRepository(s.db)
	s.projectRepo = repository.NewProjectRepository(s.db)
	categoryRepo := repository.NewCategoryRepository(s.db)
	entryRepo := repository.NewEntryRepository(s.db)

	s.authorizer = NewAuthorizer(s.projectRepo, categoryRepo, entryRepo)
	s.projects = NewProjectService(s.projectRepo, categoryRepo, s.users, validator, s.publisher, testDefaults)
	s.categories = NewCategoryService(categoryRepo, validator, testDefaults)
	s.entries = NewEntryService(entryRepo, categoryRepo, validator)
	s.stats = NewStatsService(categoryRepo, entryRepo)
	s.accounts = NewUserService(s.users, validator, s.publisher, bcrypt.MinCost, "http://localhost:8080/")
	s.auth = NewAuthService(s.users, utils.NewTokenManager("test-secret", "expensy", 0))
}

func (s *ServiceTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

// createUser inserts a confirmed user with testPassword.
func (s *ServiceTestSuite) createUser(name string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	s.Require().NoError(err)

	user := &models.User{Name: name, Email: name + "@example.com", PasswordHash: string(hash)}
	s.Require().NoError(s.users.Create(s.ctx, user))
	return user
}

func (s *ServiceTestSuite) createProject(owner *models.User, title string) *ProjectDetails {
	details, err := s.projects.Create(s.ctx, owner.ID, validation.Fields{"title": title, "currency": "EUR"})
	s.Require().NoError(err)
	return details
}

func (s *ServiceTestSuite) requireValidation(err error, field string, rules ...string) {
	var verr *validation.Error
	s.Require().ErrorAs(err, &verr)
	s.Equal(rules, verr.Fields[field], "errors: %v", verr.Fields)
}

func (s *ServiceTestSuite) TestAuthorizer_NotFoundBeforeForbidden() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	trip := s.createProject(alice, "Trip")

	project, err := s.authorizer.AuthorizeProject(s.ctx, alice.ID, trip.Project.ID)
	s.Require().NoError(err)
	s.Equal("Trip", project.Title)

	_, err = s.authorizer.AuthorizeProject(s.ctx, bob.ID, trip.Project.ID)
	s.ErrorIs(err, ErrForbidden)

	_, err = s.authorizer.AuthorizeProject(s.ctx, bob.ID, 9999)
	s.ErrorIs(err, ErrProjectNotFound, "unknown ids are not found even for outsiders")

	s.Require().NoError(s.projects.Delete(s.ctx, trip.Project))
	_, err = s.authorizer.AuthorizeProject(s.ctx, alice.ID, trip.Project.ID)
	s.ErrorIs(err, ErrProjectNotFound, "archived projects are not found")
}

func (s *ServiceTestSuite) TestAuthorizer_NestedResources() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	trip := s.createProject(alice, "Trip")
	category := trip.Categories[0]

	entry, err := s.entries.Create(s.ctx, trip.Project, validation.Fields{"title": "Taxi", "price": 1200, "date": "2024-03-01"})
	s.Require().NoError(err)

	_, err = s.authorizer.AuthorizeCategory(s.ctx, alice.ID, category.ID)
	s.NoError(err)
	_, err = s.authorizer.AuthorizeCategory(s.ctx, bob.ID, category.ID)
	s.ErrorIs(err, ErrForbidden)
	_, err = s.authorizer.AuthorizeCategory(s.ctx, alice.ID, 9999)
	s.ErrorIs(err, ErrCategoryNotFound)

	_, err = s.authorizer.AuthorizeEntry(s.ctx, alice.ID, entry.ID)
	s.NoError(err)
	_, err = s.authorizer.AuthorizeEntry(s.ctx, bob.ID, entry.ID)
	s.ErrorIs(err, ErrForbidden)

	s.Require().NoError(s.entries.Delete(s.ctx, entry))
	_, err = s.authorizer.AuthorizeEntry(s.ctx, alice.ID, entry.ID)
	s.ErrorIs(err, ErrEntryNotFound)
}

func (s *ServiceTestSuite) TestProjectCreate_AddsDefaultCategory() {
	alice := s.createUser("alice")

	details, err := s.projects.Create(s.ctx, alice.ID, validation.Fields{"title": "Trip", "currency": "eur"})
	s.Require().NoError(err)

	s.Equal("EUR", details.Project.Currency)
	s.Require().Len(details.Categories, 1)
	s.Equal("Category 1", details.Categories[0].Title)
	s.Equal("#419fdb", details.Categories[0].Color)
	s.True(details.Categories[0].IsDefault)
	s.Require().Len(details.Members, 1)
	s.Equal(alice.ID, details.Members[0].ID)
	s.Equal([]string{events.ProjectCreated}, s.publisher.names())
}

func (s *ServiceTestSuite) TestProjectCreate_Validation() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	s.createProject(alice, "Trip")

	_, err := s.projects.Create(s.ctx, alice.ID, validation.Fields{"title": "Trip", "currency": "EUR"})
	s.requireValidation(err, "title", "unique_project_name")

	_, err = s.projects.Create(s.ctx, bob.ID, validation.Fields{"title": "Trip", "currency": "EUR"})
	s.NoError(err, "titles are only unique per principal")

	_, err = s.projects.Create(s.ctx, alice.ID, validation.Fields{"title": "Home", "currency": "EURO"})
	s.requireValidation(err, "currency", "currency")

	_, err = s.projects.Create(s.ctx, alice.ID, validation.Fields{})
	s.requireValidation(err, "title", "required")
}

func (s *ServiceTestSuite) TestProjectUpdate() {
	alice := s.createUser("alice")
	trip := s.createProject(alice, "Trip")
	s.createProject(alice, "Home")

	updated, err := s.projects.Update(s.ctx, alice.ID, trip.Project, validation.Fields{"title": "Trip", "currency": "usd"})
	s.Require().NoError(err, "keeping the own title is allowed")
	s.Equal("USD", updated.Currency)
	s.Equal("Trip", updated.Title)

	_, err = s.projects.Update(s.ctx, alice.ID, trip.Project, validation.Fields{"title": "Home"})
	s.requireValidation(err, "title", "unique_project_name")
}

func (s *ServiceTestSuite) TestProjectList_Archived() {
	alice := s.createUser("alice")
	trip := s.createProject(alice, "Trip")
	s.createProject(alice, "Home")
	s.Require().NoError(s.projects.Delete(s.ctx, trip.Project))

	query := ListQuery{Pagination: utils.NewPaginationParams(1, 20)}

	live, total, err := s.projects.List(s.ctx, alice.ID, false, query)
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal("Home", live[0].Title)

	archived, total, err := s.projects.List(s.ctx, alice.ID, true, query)
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal("Trip", archived[0].Title)
}

func (s *ServiceTestSuite) TestMembers() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	trip := s.createProject(alice, "Trip")

	s.ErrorIs(s.projects.AddMember(s.ctx, trip.Project, 9999), ErrUserNotFound)

	s.Require().NoError(s.projects.AddMember(s.ctx, trip.Project, bob.ID))
	_, err := s.authorizer.AuthorizeProject(s.ctx, bob.ID, trip.Project.ID)
	s.NoError(err)

	err = s.projects.AddMember(s.ctx, trip.Project, bob.ID)
	s.requireValidation(err, "user_id", "already_in_project")

	s.Require().NoError(s.projects.RemoveMember(s.ctx, trip.Project, bob.ID))
	_, err = s.authorizer.AuthorizeProject(s.ctx, bob.ID, trip.Project.ID)
	s.ErrorIs(err, ErrForbidden)

	s.NoError(s.projects.RemoveMember(s.ctx, trip.Project, bob.ID), "removing a non-member is a no-op")

	s.Equal([]string{
		events.ProjectCreated,
		events.ProjectMemberAdded,
		events.ProjectMemberRemoved,
	}, s.publisher.names())
}

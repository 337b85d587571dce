package services

import (
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

func (s *ServiceTestSuite) defaults(projectID uint64) []string {
	var titles []string
	s.Require().NoError(s.db.Model(&models.Category{}).
		Where("project_id = ? AND is_default = ? AND status = ?", projectID, true, string(models.StatusActive)).
		Pluck("title", &titles).Error)
	return titles
}

func (s *ServiceTestSuite) TestCategoryCreate_ClaimsDefault() {
	alice := s.createUser("alice")
	trip := s.createProject(alice, "Trip")

	food, err := s.categories.Create(s.ctx, trip.Project, validation.Fields{"title": "Food", "color": "#ff0000", "is_default": true})
	s.Require().NoError(err)
	s.True(food.IsDefault)
	s.Equal([]string{"Food"}, s.defaults(trip.Project.ID))

	details, err := s.projects.Details(s.ctx, trip.Project)
	s.Require().NoError(err)
	s.Require().Len(details.Categories, 2)
	s.Equal("Category 1", details.Categories[0].Title)
	s.False(details.Categories[0].IsDefault)
}

func (s *ServiceTestSuite) TestCategoryCreate_Validation() {
	alice := s.createUser("alice")
	trip := s.createProject(alice, "Trip")
	home := s.createProject(alice, "Home")

	drinks, err := s.categories.Create(s.ctx, trip.Project, validation.Fields{"title": "Drinks"})
	s.Require().NoError(err, "a non default category is fine while another one is default")
	s.Equal("#419fdb", drinks.Color)
	s.False(drinks.IsDefault)

	_, err = s.categories.Create(s.ctx, trip.Project, validation.Fields{"title": "Drinks"})
	s.requireValidation(err, "title", "unique")

	_, err = s.categories.Create(s.ctx, home.Project, validation.Fields{"title": "Drinks"})
	s.NoError(err, "titles are unique per project only")

	_, err = s.categories.Create(s.ctx, trip.Project, validation.Fields{"title": "Bad", "color": "red"})
	s.requireValidation(err, "color", "hex_color")

	_, err = s.categories.Create(s.ctx, trip.Project, validation.Fields{"title": "Bad", "is_default": "maybe"})
	s.requireValidation(err, "is_default", "boolean")
}

func (s *ServiceTestSuite) TestCategoryUpdate_DefaultRules() {
	alice := s.createUser("alice")
	trip := s.createProject(alice, "Trip")
	general := &trip.Categories[0]

	_, err := s.categories.Update(s.ctx, general, validation.Fields{"is_default": false})
	s.requireValidation(err, "is_default", "one_default_category")

	food, err := s.categories.Create(s.ctx, trip.Project, validation.Fields{"title": "Food"})
	s.Require().NoError(err)

	food, err = s.categories.Update(s.ctx, food, validation.Fields{"is_default": true})
	s.Require().NoError(err)
	s.True(food.IsDefault)
	s.Equal([]string{"Food"}, s.defaults(trip.Project.ID))

	food, err = s.categories.Update(s.ctx, food, validation.Fields{"is_default": true})
	s.Require().NoError(err, "claiming default twice is idempotent")
	s.Equal([]string{"Food"}, s.defaults(trip.Project.ID))

	renamed, err := s.categories.Update(s.ctx, food, validation.Fields{"title": "Food"})
	s.Require().NoError(err, "the own title does not collide")
	s.True(renamed.IsDefault, "updates without is_default keep the flag")
}

func (s *ServiceTestSuite) TestCategoryDelete() {
	alice := s.createUser("alice")
	trip := s.createProject(alice, "Trip")
	general := &trip.Categories[0]

	s.ErrorIs(s.categories.Delete(s.ctx, general), ErrDefaultCategoryDelete)

	food, err := s.categories.Create(s.ctx, trip.Project, validation.Fields{"title": "Food"})
	s.Require().NoError(err)
	entry, err := s.entries.Create(s.ctx, trip.Project, validation.Fields{
		"title": "Lunch", "price": 1250, "date": "2024-03-01", "category_id": food.ID,
	})
	s.Require().NoError(err)

	s.ErrorIs(s.categories.Delete(s.ctx, food), ErrCategoryInUse)

	s.Require().NoError(s.entries.Delete(s.ctx, entry))
	s.Require().NoError(s.categories.Delete(s.ctx, food))

	_, err = s.authorizer.AuthorizeCategory(s.ctx, alice.ID, food.ID)
	s.ErrorIs(err, ErrCategoryNotFound)

	live, total, err := s.categories.List(s.ctx, trip.Project, ListQuery{Pagination: utils.NewPaginationParams(1, 20)})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal("Category 1", live[0].Title)

	all, total, err := s.categories.List(s.ctx, trip.Project, ListQuery{IncludeDeleted: true, Pagination: utils.NewPaginationParams(1, 20)})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Len(all, 2)
}

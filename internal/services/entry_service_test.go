package services

import (
	"encoding/json"

	"github.com/yukikurage/expense-tracking-api/internal/utils"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

func (s *ServiceTestSuite) TestEntryCreate() {
	alice := s.createUser("alice")
	trip := s.createProject(alice, "Trip")
	general := trip.Categories[0]

	entry, err := s.entries.Create(s.ctx, trip.Project, validation.Fields{
		"title": "Taxi", "price": json.Number("1200"), "date": "2024-03-01", "content": "airport",
	})
	s.Require().NoError(err)
	s.Equal(general.ID, entry.CategoryID, "entries default to the default category")
	s.Equal("Category 1", entry.Category.Title)
	s.Equal("2024-03-01", entry.Date.Format("2006-01-02"))
	s.Require().NotNil(entry.Content)
	s.Equal("airport", *entry.Content)
}

func (s *ServiceTestSuite) TestEntryUpdate_Content() {
	alice := s.createUser("alice")
	trip := s.createProject(alice, "Trip")

	entry, err := s.entries.Create(s.ctx, trip.Project, validation.Fields{
		"title": "Taxi", "price": 1200, "date": "2024-03-01", "content": "airport",
	})
	s.Require().NoError(err)

	entry, err = s.entries.Update(s.ctx, entry, validation.Fields{"price": 1500})
	s.Require().NoError(err)
	s.Require().NotNil(entry.Content, "absent content is left alone")
	s.Equal("airport", *entry.Content)

	fields, err := validation.DecodeFields([]byte(`{"content": null}`))
	s.Require().NoError(err)
	entry, err = s.entries.Update(s.ctx, entry, fields)
	s.Require().NoError(err)
	s.Nil(entry.Content, "null clears content")
	s.EqualValues(1500, entry.Price)
}

func (s *ServiceTestSuite) TestEntryCreate_Validation() {
	alice := s.createUser("alice")
	trip := s.createProject(alice, "Trip")
	home := s.createProject(alice, "Home")

	_, err := s.entries.Create(s.ctx, trip.Project, validation.Fields{
		"title": "Taxi", "price": 1200, "date": "2024-03-01", "category_id": 9999,
	})
	s.requireValidation(err, "category_id", "exists")

	_, err = s.entries.Create(s.ctx, trip.Project, validation.Fields{
		"title": "Taxi", "price": 1200, "date": "2024-03-01", "category_id": home.Categories[0].ID,
	})
	s.requireValidation(err, "category_id", "exists")

	_, err = s.entries.Create(s.ctx, trip.Project, validation.Fields{"title": "Taxi", "price": -1, "date": "2024-02-30"})
	var verr *validation.Error
	s.Require().ErrorAs(err, &verr)
	s.Equal([]string{"min"}, verr.Fields["price"])
	s.Equal([]string{"date"}, verr.Fields["date"])
}

func (s *ServiceTestSuite) TestEntryUpdateAndList() {
	alice := s.createUser("alice")
	trip := s.createProject(alice, "Trip")

	food, err := s.categories.Create(s.ctx, trip.Project, validation.Fields{"title": "Food"})
	s.Require().NoError(err)

	lunch, err := s.entries.Create(s.ctx, trip.Project, validation.Fields{"title": "Lunch", "price": 1250, "date": "2024-03-01"})
	s.Require().NoError(err)
	_, err = s.entries.Create(s.ctx, trip.Project, validation.Fields{"title": "Hotel", "price": 9000, "date": "2024-03-02"})
	s.Require().NoError(err)

	lunch, err = s.entries.Update(s.ctx, lunch, validation.Fields{"category_id": food.ID, "price": 1300})
	s.Require().NoError(err)
	s.Equal(food.ID, lunch.CategoryID)
	s.Equal("Food", lunch.Category.Title)
	s.EqualValues(1300, lunch.Price)

	period, err := ParsePeriod("2024-03-01", "2024-03-01")
	s.Require().NoError(err)

	entries, total, err := s.entries.List(s.ctx, trip.Project, EntryQuery{
		ListQuery: ListQuery{Pagination: utils.NewPaginationParams(1, 20)},
		Period:    period,
	})
	s.Require().NoError(err)
	s.EqualValues(1, total, "the end date is inclusive")
	s.Equal("Lunch", entries[0].Title)

	maxPrice := int64(5000)
	entries, total, err = s.entries.List(s.ctx, trip.Project, EntryQuery{
		ListQuery: ListQuery{Pagination: utils.NewPaginationParams(1, 20)},
		MaxPrice:  &maxPrice,
	})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal("Lunch", entries[0].Title)
}

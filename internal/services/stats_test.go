package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

func (s *ServiceTestSuite) TestStats() {
	alice := s.createUser("alice")
	trip := s.createProject(alice, "Trip")

	food, err := s.categories.Create(s.ctx, trip.Project, validation.Fields{"title": "Food"})
	s.Require().NoError(err)
	_, err = s.categories.Create(s.ctx, trip.Project, validation.Fields{"title": "Empty"})
	s.Require().NoError(err)

	for _, e := range []validation.Fields{
		{"title": "Hotel", "price": 1000, "date": "2024-01-01"},
		{"title": "Lunch", "price": 250, "date": "2024-01-31", "category_id": food.ID},
		{"title": "Dinner", "price": 50, "date": "2024-02-01", "category_id": food.ID},
	} {
		_, err := s.entries.Create(s.ctx, trip.Project, e)
		s.Require().NoError(err)
	}
	gone, err := s.entries.Create(s.ctx, trip.Project, validation.Fields{"title": "Refund", "price": 700, "date": "2024-01-15"})
	s.Require().NoError(err)
	s.Require().NoError(s.entries.Delete(s.ctx, gone))

	period, err := ParsePeriod("2024-01-01", "2024-01-31")
	s.Require().NoError(err)

	stats, err := s.stats.Compute(s.ctx, trip.Project, period)
	s.Require().NoError(err)

	s.EqualValues(1250, stats.Total)
	s.Equal("EUR", stats.Currency)
	s.Equal("12.50", stats.TotalAmount)
	s.Require().Len(stats.Categories, 3)
	s.Equal("Category 1", stats.Categories[0].Title)
	s.EqualValues(1000, stats.Categories[0].Total)
	s.Equal("Food", stats.Categories[1].Title)
	s.EqualValues(250, stats.Categories[1].Total)
	s.Equal("2.50", stats.Categories[1].Amount)
	s.Equal("Empty", stats.Categories[2].Title)
	s.EqualValues(0, stats.Categories[2].Total)

	var sum int64
	for _, c := range stats.Categories {
		sum += c.Total
	}
	s.Equal(stats.Total, sum)

	all, err := s.stats.Compute(s.ctx, trip.Project, Period{})
	s.Require().NoError(err)
	s.EqualValues(1300, all.Total, "open bounds include every live entry")
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		minor    int64
		currency string
		want     string
	}{
		{1250, "EUR", "12.50"},
		{5, "USD", "0.05"},
		{0, "EUR", "0.00"},
		{1250, "JPY", "1250"},
		{1250, "KWD", "1.250"},
		{1250, "XXX", "12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.minor, tt.currency))
		})
	}
}

func TestParsePeriod(t *testing.T) {
	period, err := ParsePeriod("", "")
	require.NoError(t, err)
	assert.Nil(t, period.Start)
	assert.Nil(t, period.End)

	period, err = ParsePeriod("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	r := period.dateRange()
	assert.Equal(t, "2024-01-01", r.From.Format("2006-01-02"))
	assert.Equal(t, "2024-02-01", r.Until.Format("2006-01-02"))

	_, err = ParsePeriod("yesterday", "2024-13-01")
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string][]string{"start_date": {"date"}, "end_date": {"date"}}, verr.Fields)
}

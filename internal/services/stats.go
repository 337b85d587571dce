package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/repository"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

// Period is an inclusive range of calendar days. Nil bounds are open.
type Period struct {
	Start *time.Time
	End   *time.Time
}

// ParsePeriod parses optional YYYY-MM-DD bounds. Invalid values are reported
// as a validation failure on start_date or end_date.
func ParsePeriod(start, end string) (Period, error) {
	var (
		period  Period
		invalid = map[string][]string{}
	)

	for _, bound := range []struct {
		field string
		raw   string
		dst   **time.Time
	}{
		{"start_date", start, &period.Start},
		{"end_date", end, &period.End},
	} {
		if strings.TrimSpace(bound.raw) == "" {
			continue
		}
		day, ok := validation.Fields{bound.field: bound.raw}.Date(bound.field)
		if !ok {
			invalid[bound.field] = []string{"date"}
			continue
		}
		*bound.dst = &day
	}

	if len(invalid) > 0 {
		return Period{}, &validation.Error{Fields: invalid}
	}
	return period, nil
}

// dateRange converts the inclusive period into the half-open range used by
// queries: the end bound moves to the following midnight.
func (p Period) dateRange() repository.DateRange {
	r := repository.DateRange{From: p.Start}
	if p.End != nil {
		until := p.End.AddDate(0, 0, 1)
		r.Until = &until
	}
	return r
}

// CategoryTotal is the sum of one category's entries.
type CategoryTotal struct {
	ID     uint64
	Title  string
	Total  int64
	Amount string
}

// ProjectStats sums a project's live entries over a period. Total always
// equals the sum of the category totals.
type ProjectStats struct {
	Total       int64
	Currency    string
	TotalAmount string
	Categories  []CategoryTotal
}

// StatsService aggregates entry prices per category.
type StatsService struct {
	categories repository.CategoryRepository
	entries    repository.EntryRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(categories repository.CategoryRepository, entries repository.EntryRepository) *StatsService {
	return &StatsService{
		categories: categories,
		entries:    entries,
	}
}

// Compute returns one total per live category of project in id order,
// zero for categories without entries in the period.
func (s *StatsService) Compute(ctx context.Context, project *models.Project, period Period) (*ProjectStats, error) {
	categories, err := s.categories.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	sums, err := s.entries.SumByCategory(ctx, project.ID, period.dateRange())
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries: %w", err)
	}

	stats := &ProjectStats{
		Currency:   project.Currency,
		Categories: make([]CategoryTotal, 0, len(categories)),
	}
	for _, category := range categories {
		total := sums[category.ID]
		stats.Total += total
		stats.Categories = append(stats.Categories, CategoryTotal{
			ID:     category.ID,
			Title:  category.Title,
			Total:  total,
			Amount: FormatAmount(total, project.Currency),
		})
	}
	stats.TotalAmount = FormatAmount(stats.Total, project.Currency)

	return stats, nil
}

// Minor unit exponents that differ from the usual two decimals (ISO 4217).
var currencyExponents = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0, "KRW": 0,
	"PYG": 0, "RWF": 0, "UGX": 0, "UYI": 0, "VND": 0, "VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

// FormatAmount renders minor units as a decimal string in currency, e.g.
// 1250 EUR as "12.50" and 1250 JPY as "1250".
func FormatAmount(minor int64, currency string) string {
	exp, ok := currencyExponents[currency]
	if !ok {
		exp = 2
	}
	return decimal.New(minor, -exp).StringFixed(exp)
}

package dto

import (
	"github.com/yukikurage/expense-tracking-api/internal/services"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
)

// Paginate describes the page returned in a list response
type Paginate struct {
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	Limit       int   `json:"limit"`
}

// ListResponse wraps a page of items
type ListResponse[T any] struct {
	Items    []T      `json:"items"`
	Paginate Paginate `json:"paginate"`
}

// NewListResponse builds a ListResponse for a page of total items
func NewListResponse[T any](items []T, total int64, params utils.PaginationParams) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Items: items,
		Paginate: Paginate{
			TotalCount:  total,
			TotalPages:  params.TotalPages(total),
			CurrentPage: params.Page,
			Limit:       params.Limit,
		},
	}
}

// CategoryTotalDTO is one category's share of the project total
type CategoryTotalDTO struct {
	ID     uint64 `json:"id"`
	Title  string `json:"title"`
	Total  int64  `json:"total"`
	Amount string `json:"amount"`
}

// StatsDTO sums a project's entries per category
type StatsDTO struct {
	Total       int64              `json:"total"`
	Currency    string             `json:"currency"`
	TotalAmount string             `json:"total_amount"`
	Categories  []CategoryTotalDTO `json:"categories"`
}

// EntryListResponse is a page of entries with the stats of the same period
type EntryListResponse struct {
	ListResponse[any]
	Stats StatsDTO `json:"stats"`
}

func ToStatsDTO(stats *services.ProjectStats) StatsDTO {
	return StatsDTO{
		Total:       stats.Total,
		Currency:    stats.Currency,
		TotalAmount: stats.TotalAmount,
		Categories: Map(stats.Categories, func(c services.CategoryTotal) CategoryTotalDTO {
			return CategoryTotalDTO{
				ID:     c.ID,
				Title:  c.Title,
				Total:  c.Total,
				Amount: c.Amount,
			}
		}),
	}
}

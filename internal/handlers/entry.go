package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/expense-tracking-api/internal/dto"
	"github.com/yukikurage/expense-tracking-api/internal/middleware"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/services"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

type EntryHandler struct {
	entries *services.EntryService
	stats   *services.StatsService
}

func NewEntryHandler(entries *services.EntryService, stats *services.StatsService) *EntryHandler {
	return &EntryHandler{
		entries: entries,
		stats:   stats,
	}
}

// ListEntries returns a page of the project's entries together with the
// stats of the same period
func (h *EntryHandler) ListEntries(c *gin.Context) {
	project, _ := middleware.GetProject(c)

	query, err := entryQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	entries, total, err := h.entries.List(c.Request.Context(), project, query)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.stats.Compute(c.Request.Context(), project, query.Period)
	if err != nil {
		respondError(c, err)
		return
	}

	lvl := level(c, dto.Extended)
	items := dto.Map(entries, func(e models.Entry) any {
		return dto.ShapeEntry(e, lvl)
	})
	c.JSON(http.StatusOK, dto.EntryListResponse{
		ListResponse: dto.NewListResponse(items, total, query.Pagination),
		Stats:        dto.ToStatsDTO(stats),
	})
}

// entryQuery reads the entry filters. Malformed values are reported as a
// validation failure.
func entryQuery(c *gin.Context) (services.EntryQuery, error) {
	query := services.EntryQuery{ListQuery: listQuery(c)}
	invalid := map[string][]string{}

	period, err := services.ParsePeriod(c.Query("start_date"), c.Query("end_date"))
	var verr *validation.Error
	if errors.As(err, &verr) {
		for field, rules := range verr.Fields {
			invalid[field] = rules
		}
	}
	query.Period = period

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			invalid["category_id"] = []string{"integer"}
		}
		query.CategoryID = &id
	}
	for field, dst := range map[string]**int64{"min_price": &query.MinPrice, "max_price": &query.MaxPrice} {
		raw := c.Query(field)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			invalid[field] = []string{"integer"}
			continue
		}
		*dst = &n
	}

	if len(invalid) > 0 {
		return services.EntryQuery{}, &validation.Error{Fields: invalid}
	}
	return query, nil
}

// CreateEntry records an entry in the project
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	project, _ := middleware.GetProject(c)
	fields, ok := readFields(c)
	if !ok {
		return
	}

	entry, err := h.entries.Create(c.Request.Context(), project, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryExtendedDTO(*entry))
}

func (h *EntryHandler) GetEntry(c *gin.Context) {
	entry, _ := middleware.GetEntry(c)
	c.JSON(http.StatusOK, dto.ShapeEntry(*entry, level(c, dto.Extended)))
}

func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	entry, _ := middleware.GetEntry(c)
	fields, ok := readFields(c)
	if !ok {
		return
	}

	updated, err := h.entries.Update(c.Request.Context(), entry, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryExtendedDTO(*updated))
}

// DeleteEntry archives an entry
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	entry, _ := middleware.GetEntry(c)

	if err := h.entries.Delete(c.Request.Context(), entry); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

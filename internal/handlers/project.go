package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/expense-tracking-api/internal/dto"
	apierrors "github.com/yukikurage/expense-tracking-api/internal/errors"
	"github.com/yukikurage/expense-tracking-api/internal/middleware"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/services"
)

type ProjectHandler struct {
	projects *services.ProjectService
	stats    *services.StatsService
}

func NewProjectHandler(projects *services.ProjectService, stats *services.StatsService) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		stats:    stats,
	}
}

// ListProjects returns the principal's live projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	h.list(c, false)
}

// ListArchivedProjects returns the principal's deleted projects
func (h *ProjectHandler) ListArchivedProjects(c *gin.Context) {
	h.list(c, true)
}

func (h *ProjectHandler) list(c *gin.Context, archived bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	query := listQuery(c)
	projects, total, err := h.projects.List(c.Request.Context(), userID, archived, query)
	if err != nil {
		respondError(c, err)
		return
	}

	lvl := level(c, dto.Extended)
	items := dto.Map(projects, func(p models.Project) any {
		return dto.ShapeProject(p, lvl)
	})
	c.JSON(http.StatusOK, dto.NewListResponse(items, total, query.Pagination))
}

// CreateProject creates a project with its default category
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	fields, ok := readFields(c)
	if !ok {
		return
	}

	details, err := h.projects.Create(c.Request.Context(), userID, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectFullDTO(details))
}

// GetProject returns a project, with members and categories unless a lower
// level is requested
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, _ := middleware.GetProject(c)

	lvl := level(c, dto.Full)
	if lvl != dto.Full {
		c.JSON(http.StatusOK, dto.ShapeProject(*project, lvl))
		return
	}
	h.respondDetails(c, project)
}

// UpdateProject updates a project's title and currency
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, _ := middleware.GetProject(c)
	userID, _ := middleware.GetUserID(c)
	fields, ok := readFields(c)
	if !ok {
		return
	}

	updated, err := h.projects.Update(c.Request.Context(), userID, project, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectExtendedDTO(*updated))
}

// DeleteProject archives a project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, _ := middleware.GetProject(c)

	if err := h.projects.Delete(c.Request.Context(), project); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddMember adds the :userId user to the project
func (h *ProjectHandler) AddMember(c *gin.Context) {
	project, _ := middleware.GetProject(c)
	userID, ok := paramID(c, "userId", "Invalid user ID")
	if !ok {
		return
	}

	if err := h.projects.AddMember(c.Request.Context(), project, userID); err != nil {
		respondError(c, err)
		return
	}
	h.respondDetails(c, project)
}

// RemoveMember removes the :userId user from the project
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	project, _ := middleware.GetProject(c)
	userID, ok := paramID(c, "userId", "Invalid user ID")
	if !ok {
		return
	}

	if err := h.projects.RemoveMember(c.Request.Context(), project, userID); err != nil {
		respondError(c, err)
		return
	}
	h.respondDetails(c, project)
}

// GetStats sums the project's entries per category between start_date and
// end_date, both inclusive
func (h *ProjectHandler) GetStats(c *gin.Context) {
	project, _ := middleware.GetProject(c)

	period, err := services.ParsePeriod(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.stats.Compute(c.Request.Context(), project, period)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsDTO(stats))
}

func (h *ProjectHandler) respondDetails(c *gin.Context, project *models.Project) {
	details, err := h.projects.Details(c.Request.Context(), project)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectFullDTO(details))
}

func toProjectFullDTO(details *services.ProjectDetails) dto.ProjectFullDTO {
	return dto.ToProjectFullDTO(*details.Project, details.Members, details.Categories)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/expense-tracking-api/internal/dto"
	"github.com/yukikurage/expense-tracking-api/internal/middleware"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/services"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// ListCategories returns a page of the project's categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	project, _ := middleware.GetProject(c)

	query := listQuery(c)
	categories, total, err := h.categories.List(c.Request.Context(), project, query)
	if err != nil {
		respondError(c, err)
		return
	}

	lvl := level(c, dto.Extended)
	items := dto.Map(categories, func(cat models.Category) any {
		return dto.ShapeCategory(cat, lvl)
	})
	c.JSON(http.StatusOK, dto.NewListResponse(items, total, query.Pagination))
}

// CreateCategory adds a category to the project
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	project, _ := middleware.GetProject(c)
	fields, ok := readFields(c)
	if !ok {
		return
	}

	category, err := h.categories.Create(c.Request.Context(), project, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryExtendedDTO(*category))
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, _ := middleware.GetCategory(c)
	c.JSON(http.StatusOK, dto.ShapeCategory(*category, level(c, dto.Extended)))
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	category, _ := middleware.GetCategory(c)
	fields, ok := readFields(c)
	if !ok {
		return
	}

	updated, err := h.categories.Update(c.Request.Context(), category, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryExtendedDTO(*updated))
}

// DeleteCategory archives a category that is neither default nor in use
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	category, _ := middleware.GetCategory(c)

	if err := h.categories.Delete(c.Request.Context(), category); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

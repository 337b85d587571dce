package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/expense-tracking-api/internal/dto"
	apierrors "github.com/yukikurage/expense-tracking-api/internal/errors"
	"github.com/yukikurage/expense-tracking-api/internal/middleware"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/services"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers returns confirmed users
func (h *UserHandler) ListUsers(c *gin.Context) {
	pagination := utils.GetPaginationParams(c)

	users, total, err := h.users.List(c.Request.Context(), pagination)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.Map(users, dto.ToUserDTO), total, pagination))
}

// Register creates an account awaiting confirmation
func (h *UserHandler) Register(c *gin.Context) {
	fields, ok := readFields(c)
	if !ok {
		return
	}

	user, err := h.users.Register(c.Request.Context(), fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserExtendedDTO(*user))
}

// GetUser returns a user. The principal sees their own account in full,
// other accounts at the basic level.
func (h *UserHandler) GetUser(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	userID, ok := h.targetID(c, principal)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if user.ID == principal.ID {
		c.JSON(http.StatusOK, dto.ToUserExtendedDTO(*user))
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser updates the principal's own account
func (h *UserHandler) UpdateUser(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	userID, ok := h.targetID(c, principal)
	if !ok {
		return
	}
	fields, ok := readFields(c)
	if !ok {
		return
	}

	user, err := h.users.Update(c.Request.Context(), principal, userID, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserExtendedDTO(*user))
}

// DeleteUser deletes the principal's own account
func (h *UserHandler) DeleteUser(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	userID, ok := h.targetID(c, principal)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), principal, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) principal(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return user, ok
}

// targetID resolves the :id parameter, where "current" names the principal.
func (h *UserHandler) targetID(c *gin.Context, principal *models.User) (uint64, bool) {
	if c.Param("id") == "current" {
		return principal.ID, true
	}
	return paramID(c, "id", "Invalid user ID")
}

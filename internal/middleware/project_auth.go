package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/expense-tracking-api/internal/constants"
	apierrors "github.com/yukikurage/expense-tracking-api/internal/errors"
	"github.com/yukikurage/expense-tracking-api/internal/logging"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/services"
)

// ResourceAuthorizer resolves a resource and checks the principal's
// membership of the project owning it.
type ResourceAuthorizer interface {
	AuthorizeProject(ctx context.Context, principalID, projectID uint64) (*models.Project, error)
	AuthorizeCategory(ctx context.Context, principalID, categoryID uint64) (*models.Category, error)
	AuthorizeEntry(ctx context.Context, principalID, entryID uint64) (*models.Entry, error)
}

// RequireProjectAccess checks that the principal is a member of the project
// in the :id parameter. Unknown projects are reported as not found before
// membership is considered.
func RequireProjectAccess(authz ResourceAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, userID, ok := resourceIDs(c, "Invalid project ID")
		if !ok {
			return
		}

		project, err := authz.AuthorizeProject(c.Request.Context(), userID, projectID)
		if err != nil {
			denied(c, err, "Project not found")
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// GetProject retrieves the project stored by RequireProjectAccess
func GetProject(c *gin.Context) (*models.Project, bool) {
	v, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}
	project, ok := v.(*models.Project)
	return project, ok
}

// resourceIDs parses the :id parameter and reads the principal. It responds
// and returns false on failure.
func resourceIDs(c *gin.Context, invalidMessage string) (uint64, uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, invalidMessage)
		return 0, 0, false
	}

	userID, exists := GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}
	return id, userID, true
}

// denied maps an authorization failure to its response.
func denied(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "You are not a member of this project")
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrEntryNotFound):
		apierrors.NotFound(c, notFoundMessage)
	default:
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "failed to authorize request",
			slog.Any(logging.FieldError, err))
		apierrors.InternalError(c, "")
	}
}

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/expense-tracking-api/internal/dto"
	apierrors "github.com/yukikurage/expense-tracking-api/internal/errors"
	"github.com/yukikurage/expense-tracking-api/internal/logging"
	"github.com/yukikurage/expense-tracking-api/internal/services"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

var notFoundMessages = map[error]string{
	services.ErrProjectNotFound:  "Project not found",
	services.ErrCategoryNotFound: "Category not found",
	services.ErrEntryNotFound:    "Entry not found",
	services.ErrUserNotFound:     "User not found",
}

// respondError maps a service error to its API response. Unexpected errors
// are logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		apierrors.ValidationFailed(c, verr.Fields)
		return
	}

	for sentinel, message := range notFoundMessages {
		if errors.Is(err, sentinel) {
			apierrors.NotFound(c, message)
			return
		}
	}

	switch {
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrDefaultCategoryDelete),
		errors.Is(err, services.ErrCategoryInUse):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrAccountNotConfirmed):
		apierrors.AccountNotConfirmed(c)
	case errors.Is(err, services.ErrInvalidToken):
		apierrors.Unauthorized(c, "Invalid or expired token")
	case errors.Is(err, services.ErrInvalidConfirmation):
		apierrors.BadRequest(c, "Invalid confirmation link")
	default:
		ctx := c.Request.Context()
		logging.FromContext(ctx).ErrorContext(ctx, "request failed",
			slog.String(logging.FieldPath, c.FullPath()),
			slog.Any(logging.FieldError, err),
		)
		apierrors.InternalError(c, "")
	}
}

// readFields decodes the JSON request body. It responds and returns false
// when the body is not a JSON object.
func readFields(c *gin.Context) (validation.Fields, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return nil, false
	}

	fields, err := validation.DecodeFields(body)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return nil, false
	}
	return fields, true
}

// listQuery reads sort, direction, include_deleted, page and limit.
func listQuery(c *gin.Context) services.ListQuery {
	includeDeleted, _ := strconv.ParseBool(c.Query("include_deleted"))
	return services.ListQuery{
		Sort:           c.Query("sort"),
		Direction:      c.Query("direction"),
		IncludeDeleted: includeDeleted,
		Pagination:     utils.GetPaginationParams(c),
	}
}

func level(c *gin.Context, fallback dto.Level) dto.Level {
	return dto.ParseLevel(c.Query("level"), fallback)
}

// paramID parses a numeric path parameter. It responds and returns false
// when the parameter is not a positive integer.
func paramID(c *gin.Context, name, message string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, message)
		return 0, false
	}
	return id, true
}

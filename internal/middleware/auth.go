package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/expense-tracking-api/internal/constants"
	apierrors "github.com/yukikurage/expense-tracking-api/internal/errors"
	"github.com/yukikurage/expense-tracking-api/internal/logging"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/services"
)

// TokenResolver turns a bearer token into the principal it was issued to.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// RequireAuth authenticates the request with the Authorization bearer token,
// falling back to the token stored in the session at login.
func RequireAuth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = sessionToken(c)
		}
		if token == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidToken):
				apierrors.Unauthorized(c, "Invalid or expired token")
			case errors.Is(err, services.ErrAccountNotConfirmed):
				apierrors.AccountNotConfirmed(c)
			default:
				logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "failed to resolve token",
					slog.Any(logging.FieldError, err))
				apierrors.InternalError(c, "")
			}
			return
		}

		// Store the principal in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// sessionToken reads the session only when a session store is installed.
func sessionToken(c *gin.Context) string {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return ""
	}
	token, _ := sessions.Default(c).Get(constants.SessionKeyToken).(string)
	return token
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint64)
	return id, ok
}

// GetUser retrieves the current principal from context
func GetUser(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	u, ok := user.(*models.User)
	return u, ok
}

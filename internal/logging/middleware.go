package logging

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/expense-tracking-api/internal/constants"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// RequestLogger attaches a request-scoped logger to the request context and
// logs one line per request, at warn for 4xx and error for 5xx.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		logger := base.With(slog.String(FieldRequestID, requestID))
		ctx := WithLogger(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		attrs := []slog.Attr{
			slog.String(FieldMethod, c.Request.Method),
			slog.String(FieldPath, path),
			slog.Int(FieldStatus, status),
			slog.Int64(FieldDuration, time.Since(start).Milliseconds()),
			slog.String(FieldClientIP, c.ClientIP()),
		}
		if userID, ok := c.Get(constants.ContextKeyUserID); ok {
			attrs = append(attrs, slog.Any(FieldUserID, userID))
		}

		logger.LogAttrs(ctx, level, "request completed", attrs...)
	}
}

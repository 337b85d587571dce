// Package logging builds the application's slog logger and carries
// request-scoped loggers through context.
//
//	logger := logging.New("info", "json", os.Stderr)
//	ctx = logging.WithLogger(ctx, logger)
//	logging.FromContext(ctx).ErrorContext(ctx, "failed to create project",
//	    slog.Uint64(logging.FieldProjectID, id),
//	    slog.Any(logging.FieldError, err),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Structured field names.
const (
	FieldRequestID  = "request_id"
	FieldUserID     = "user_id"
	FieldProjectID  = "project_id"
	FieldCategoryID = "category_id"
	FieldEntryID    = "entry_id"
	FieldEvent      = "event"
	FieldError      = "error"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldDuration   = "duration_ms"
	FieldClientIP   = "client_ip"
	FieldComponent  = "component"
)

type contextKey struct{}

// New creates a logger writing to w. Unknown levels fall back to info and
// any format other than "text" produces JSON.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

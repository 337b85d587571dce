// Package services holds the business logic between HTTP handlers and
// repositories. Handlers resolve and authorize resources through the
// Authorizer before calling into a service.
package services

import (
	"strings"

	"github.com/yukikurage/expense-tracking-api/internal/utils"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

// ListQuery carries the listing options shared by every collection.
type ListQuery struct {
	Sort           string
	Direction      string
	IncludeDeleted bool
	Pagination     utils.PaginationParams
}

// pickStrings copies the submitted string fields into update columns.
func pickStrings(fields validation.Fields, columns map[string]any, names ...string) {
	for _, name := range names {
		if v, ok := fields.String(name); ok {
			columns[name] = v
		}
	}
}

// upperField upper-cases a submitted string field such as a currency code.
func upperField(fields validation.Fields, name string) validation.Fields {
	v, ok := fields[name].(string)
	if !ok {
		return fields
	}
	return fields.With(name, strings.ToUpper(strings.TrimSpace(v)))
}

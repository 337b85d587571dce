package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is the sentinel every *Error unwraps to.
var ErrValidation = errors.New("validation failed")

// Error lists the failed rule names per field.
type Error struct {
	Fields map[string][]string
}

// NewError builds a single-field failure.
func NewError(field, rule string) *Error {
	return &Error{Fields: map[string][]string{field: {rule}}}
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], ", "))
	}
	return fmt.Sprintf("validation failed (%s)", strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return ErrValidation
}

// Result is the outcome of a Validate call.
type Result struct {
	Errors map[string][]string
}

func (r *Result) Passes() bool {
	return len(r.Errors) == 0
}

// Err returns nil when the result passes and an *Error otherwise.
func (r *Result) Err() error {
	if r.Passes() {
		return nil
	}
	return &Error{Fields: r.Errors}
}

func (r *Result) fail(field, rule string) {
	if r.Errors == nil {
		r.Errors = map[string][]string{}
	}
	r.Errors[field] = append(r.Errors[field], rule)
}

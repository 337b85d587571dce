// Package validation evaluates declarative rule sets against submitted fields.
//
// Non-Required rules are skipped for absent fields; Required and implicit
// Custom rules always run. Once a field has failed, the rules that query the
// database are skipped for it. A Scope that references an absent field fails
// the rule; an absent ExcludeField excludes nothing.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/expense-tracking-api/internal/models"
)

type Validator struct {
	db      *gorm.DB
	formats *validator.Validate
}

func New(db *gorm.DB) *Validator {
	return &Validator{
		db:      db,
		formats: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate evaluates rules against fields. The returned error is reserved for
// failures of the rule machinery itself, such as a database error.
func (v *Validator) Validate(ctx context.Context, rules RuleSet, fields Fields) (*Result, error) {
	result := &Result{}

	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, field := range names {
		failed := false
		for _, rule := range rules[field] {
			if !fields.Has(field) && !runsWhenAbsent(rule) {
				continue
			}
			if failed && queriesDatabase(rule) {
				continue
			}

			ok, err := v.check(ctx, rule, field, fields)
			if err != nil {
				return nil, fmt.Errorf("evaluate %s on %s: %w", rule.RuleName(), field, err)
			}
			if !ok {
				result.fail(field, rule.RuleName())
				failed = true
			}
		}
	}

	return result, nil
}

// Check is Validate collapsed into a single error: nil, *Error or an
// internal error.
func (v *Validator) Check(ctx context.Context, rules RuleSet, fields Fields) error {
	result, err := v.Validate(ctx, rules, fields)
	if err != nil {
		return err
	}
	return result.Err()
}

func runsWhenAbsent(rule Rule) bool {
	switch r := rule.(type) {
	case Required:
		return true
	case Custom:
		return r.Implicit
	default:
		return false
	}
}

func queriesDatabase(rule Rule) bool {
	switch rule.(type) {
	case Exists, Unique, Custom:
		return true
	default:
		return false
	}
}

func (v *Validator) check(ctx context.Context, rule Rule, field string, fields Fields) (bool, error) {
	value := fields[field]

	switch r := rule.(type) {
	case Required:
		if !fields.Has(field) {
			return false, nil
		}
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s) != "", nil
		}
		return true, nil

	case MinValue:
		n, ok := asInt64(value)
		return ok && n >= r.Min, nil

	case Integer:
		_, ok := asInt64(value)
		return ok, nil

	case Date:
		_, ok := asDate(value)
		return ok, nil

	case Boolean:
		_, ok := asBool(value)
		return ok, nil

	case Length:
		s, ok := value.(string)
		if !ok {
			return false, nil
		}
		n := utf8.RuneCountInString(s)
		return n >= r.Min && (r.Max == 0 || n <= r.Max), nil

	case Pattern:
		s, ok := value.(string)
		return ok && r.Expr.MatchString(s), nil

	case Format:
		s, ok := value.(string)
		return ok && v.formats.Var(s, r.Tag) == nil, nil

	case Confirmed:
		want, ok := asString(value)
		if !ok {
			return false, nil
		}
		got, ok := fields.String(r.Field)
		return ok && got == want, nil

	case Exists:
		column := r.Column
		if column == "" {
			column = "id"
		}
		q, ok := v.scoped(ctx, r.Table, column, value, r.Scope, r.ActiveOnly, fields)
		if !ok {
			return false, nil
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil

	case Unique:
		column := r.Column
		if column == "" {
			column = field
		}
		q, ok := v.scoped(ctx, r.Table, column, value, r.Scope, r.ActiveOnly, fields)
		if !ok {
			return false, nil
		}
		if r.ExcludeField != "" {
			if id, ok := fields.Int64(r.ExcludeField); ok {
				q = q.Where(clause.Neq{Column: clause.Column{Name: "id"}, Value: id})
			}
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
		return count == 0, nil

	case Custom:
		return r.Check(ctx, v.db.WithContext(ctx), value, fields)

	default:
		return false, fmt.Errorf("unknown rule type %T", rule)
	}
}

// scoped builds the lookup shared by Exists and Unique. ok is false when a
// scope references an absent field.
func (v *Validator) scoped(ctx context.Context, table, column string, value any, scopes []Scope, activeOnly bool, fields Fields) (*gorm.DB, bool) {
	q := v.db.WithContext(ctx).Table(table).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: normalize(value)})

	for _, s := range scopes {
		scopeValue := s.Value
		if s.Field != "" {
			if !fields.Has(s.Field) {
				return nil, false
			}
			scopeValue = normalize(fields[s.Field])
		}
		q = q.Where(clause.Eq{Column: clause.Column{Name: s.Column}, Value: scopeValue})
	}

	if activeOnly {
		q = q.Where(clause.Eq{Column: clause.Column{Name: "status"}, Value: string(models.StatusActive)})
	}
	return q, true
}

// normalize turns decoded JSON numbers into integers so they bind as numeric
// parameters.
func normalize(value any) any {
	if n, ok := value.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}
		return n.String()
	}
	return value
}

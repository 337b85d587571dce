package validation

import (
	"context"
	"regexp"

	"gorm.io/gorm"
)

// Rule is one of the concrete rule types below. The set is closed; Validator
// dispatches on the concrete type.
type Rule interface {
	// RuleName is reported in the error map when the rule fails.
	RuleName() string
}

// RuleSet maps field names to the rules evaluated against them, in order.
type RuleSet map[string][]Rule

// Scope narrows a database rule to rows whose Column equals either the
// submitted Field or, when Field is empty, the fixed Value.
type Scope struct {
	Column string
	Field  string
	Value  any
}

type Required struct{}

type MinValue struct{ Min int64 }

type Integer struct{}

type Date struct{}

type Boolean struct{}

// Length bounds a string's length in characters. Max 0 means unbounded.
type Length struct{ Min, Max int }

type Pattern struct {
	Name string
	Expr *regexp.Regexp
}

// Format checks a string against a go-playground/validator tag such as
// "email" or "iso4217".
type Format struct {
	Name string
	Tag  string
}

// Confirmed requires Field to carry the same value.
type Confirmed struct{ Field string }

// Exists requires a row in Table whose Column equals the value.
type Exists struct {
	Table      string
	Column     string
	Scope      []Scope
	ActiveOnly bool
}

// Unique requires that no row in Table has Column equal to the value. The row
// whose id is submitted in ExcludeField is ignored.
type Unique struct {
	Table        string
	Column       string
	Scope        []Scope
	ExcludeField string
	ActiveOnly   bool
}

// CheckFunc evaluates a custom rule. value is nil when the field is absent.
type CheckFunc func(ctx context.Context, db *gorm.DB, value any, fields Fields) (bool, error)

// Custom runs Check. Implicit rules also run when the field is absent.
type Custom struct {
	Name     string
	Implicit bool
	Check    CheckFunc
}

func (Required) RuleName() string  { return "required" }
func (MinValue) RuleName() string  { return "min" }
func (Integer) RuleName() string   { return "integer" }
func (Date) RuleName() string      { return "date" }
func (Boolean) RuleName() string   { return "boolean" }
func (Length) RuleName() string    { return "length" }
func (r Pattern) RuleName() string { return r.Name }
func (r Format) RuleName() string  { return r.Name }
func (Confirmed) RuleName() string { return "confirmed" }
func (Exists) RuleName() string    { return "exists" }
func (Unique) RuleName() string    { return "unique" }
func (r Custom) RuleName() string  { return r.Name }

// HexColor matches "#" followed by six hex digits.
var HexColor = Pattern{Name: "hex_color", Expr: regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)}

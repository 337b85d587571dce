package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yukikurage/expense-tracking-api/internal/constants"
)

// Fields is a submitted payload keyed by field name.
type Fields map[string]any

// DecodeFields parses a JSON object, keeping numbers as json.Number.
// An empty body yields an empty field map.
func DecodeFields(body []byte) (Fields, error) {
	fields := Fields{}
	if len(bytes.TrimSpace(body)) == 0 {
		return fields, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return fields, nil
}

// Has reports whether name was submitted with a non-null value.
func (f Fields) Has(name string) bool {
	v, ok := f[name]
	return ok && v != nil
}

// Null reports whether name was submitted as an explicit JSON null.
func (f Fields) Null(name string) bool {
	v, ok := f[name]
	return ok && v == nil
}

// With returns a copy of f with name set to value.
func (f Fields) With(name string, value any) Fields {
	out := make(Fields, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	out[name] = value
	return out
}

func (f Fields) String(name string) (string, bool) {
	if !f.Has(name) {
		return "", false
	}
	return asString(f[name])
}

func (f Fields) Int64(name string) (int64, bool) {
	if !f.Has(name) {
		return 0, false
	}
	return asInt64(f[name])
}

func (f Fields) Uint64(name string) (uint64, bool) {
	n, ok := f.Int64(name)
	if !ok || n < 0 {
		return 0, false
	}
	return uint64(n), true
}

func (f Fields) Bool(name string) (bool, bool) {
	if !f.Has(name) {
		return false, false
	}
	return asBool(f[name])
}

// Date parses a YYYY-MM-DD value as midnight UTC.
func (f Fields) Date(name string) (time.Time, bool) {
	if !f.Has(name) {
		return time.Time{}, false
	}
	return asDate(f[name])
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	default:
		return "", false
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case json.Number, int, int64, float64:
		n, ok := asInt64(b)
		if !ok || (n != 0 && n != 1) {
			return false, false
		}
		return n == 1, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	return false, false
}

func asDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		y, m, day := d.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), true
	case string:
		t, err := time.ParseInLocation(constants.DateLayout, strings.TrimSpace(d), time.UTC)
		return t, err == nil
	default:
		return time.Time{}, false
	}
}

package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
)

// Filter restricts recommendations on one item property.
type Filter struct {
	Property string
	Op       string
	Value    any
}

var filterOps = map[string]bool{
	"eq": true, "neq": true,
	"gt": true, "gte": true, "lt": true, "lte": true,
	"in": true, "notin": true,
	"exists": false, "notempty": false,
}

// ParseFilter parses the "name:op" or "name:op:value" form used in query
// strings. The value may itself contain colons.
func ParseFilter(s string) (Filter, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		return Filter{}, errWrongData("invalid filter %q, want name:op[:value]", s)
	}
	f := Filter{Property: parts[0], Op: parts[1]}
	if len(parts) == 3 {
		f.Value = parts[2]
	}
	return f, f.validate()
}

func (f Filter) validate() error {
	needsValue, ok := filterOps[f.Op]
	if !ok {
		return errWrongData("unknown filter operator %q", f.Op)
	}
	if f.Property == "" {
		return errWrongData("filter property_name is required")
	}
	if needsValue && f.Value == nil {
		return errWrongData("filter operator %q requires a value", f.Op)
	}
	return nil
}

// Match reports whether an item's properties satisfy the filter. List
// properties match eq, in, gt and friends when any element does; neq and
// notin require that no element matches.
func (f Filter) Match(p domain.Properties) bool {
	v, present := p[f.Property]

	switch f.Op {
	case "exists":
		return present
	case "notempty":
		return present && !isEmptyValue(v)
	case "neq":
		return !present || !anyElem(v, func(e any) bool { return equalValues(e, f.Value) })
	case "notin":
		set := valueList(f.Value)
		return !present || !anyElem(v, func(e any) bool { return inList(e, set) })
	}

	if !present {
		return false
	}
	switch f.Op {
	case "eq":
		return anyElem(v, func(e any) bool { return equalValues(e, f.Value) })
	case "in":
		set := valueList(f.Value)
		return anyElem(v, func(e any) bool { return inList(e, set) })
	case "gt", "gte", "lt", "lte":
		return anyElem(v, func(e any) bool {
			c, ok := compareValues(e, f.Value)
			if !ok {
				return false
			}
			switch f.Op {
			case "gt":
				return c > 0
			case "gte":
				return c >= 0
			case "lt":
				return c < 0
			default:
				return c <= 0
			}
		})
	}
	return false
}

func anyElem(v any, fn func(any) bool) bool {
	if list, ok := v.([]any); ok {
		for _, e := range list {
			if fn(e) {
				return true
			}
		}
		return false
	}
	return fn(v)
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// valueList turns an "in" operand into its members. Strings are split on
// commas.
func valueList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case string:
		parts := strings.Split(t, ",")
		out := make([]any, len(parts))
		for i, s := range parts {
			out[i] = strings.TrimSpace(s)
		}
		return out
	}
	return []any{v}
}

func inList(v any, set []any) bool {
	for _, s := range set {
		if equalValues(v, s) {
			return true
		}
	}
	return false
}

func equalValues(a, b any) bool {
	if c, ok := compareValues(a, b); ok {
		return c == 0
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// compareValues compares numerically when both sides are numbers (or
// numeric strings) and lexically when both are strings.
func compareValues(a, b any) (int, bool) {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}

	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		return strings.Compare(sa, sb), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

package answers

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Number coerces a value to float64 for ordered comparisons. Numeric types
// convert directly; strings are parsed after trimming. Anything else does
// not coerce.
func Number(value any) (float64, bool) {
	if n, ok := numeric(value); ok {
		return n, true
	}
	if s, ok := value.(string); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// String renders a value for substring matching. nil renders empty.
func String(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Equal is the strict equality used by equals and notEquals conditions.
// Numeric values compare across widths, so a decoded float64(5) equals a
// programmatic int(5), but a string never equals a number and values of
// uncomparable shapes are never equal.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if an, ok := numeric(a); ok {
		bn, ok := numeric(b)
		return ok && an == bn
	}
	if _, ok := numeric(b); ok {
		return false
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

package vals

import (
	"math"
	"strconv"
	"strings"
)

// Stringer wraps the String method.
type Stringer interface {
	// Stringer converts the receiver to a string.
	String() string
}

// ToString converts a value to string, as used by string interpolation. Strings
// are returned verbatim, numbers and booleans are formatted, and everything
// else falls back to Repr.
func ToString(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return formatFloat64(v)
	case string:
		return v
	case Stringer:
		return v.String()
	default:
		return Repr(v)
	}
}

func formatFloat64(f float64) string {
	// Use plain notation for everything but very large and very small
	// numbers, and always show a decimal point so that floats can be told
	// apart from ints.
	s := strconv.FormatFloat(f, 'f', -1, 64)
	noPoint := !strings.ContainsRune(s, '.')
	if (noPoint && len(s) > 14 && s[len(s)-1] == '0') ||
		strings.HasPrefix(s, "0.0000") {
		return strconv.FormatFloat(f, 'e', -1, 64)
	} else if noPoint && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return s + ".0"
	}
	return s
}

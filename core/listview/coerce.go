package listview

import (
	"fmt"
	"strconv"
)

// asString converts a record value to its string form for searching and
// lexicographic comparison. Missing (nil) values normalize to "".
func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// asBool converts a record value to a boolean. Missing values and
// unrecognized types normalize to false; numeric values follow the usual
// zero/non-zero convention.
func asBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int64:
		return val != 0
	case int:
		return val != 0
	case float64:
		return val != 0
	case string:
		b, err := strconv.ParseBool(val)
		return err == nil && b
	default:
		return false
	}
}

// asFloat64 converts a record value of the various numeric types to a
// float64 for comparison. Booleans coerce to 0/1; missing values and
// non-numeric strings normalize to zero.
func asFloat64(v any) float64 {
	switch val := v.(type) {
	case bool:
		if val {
			return 1
		}
		return 0
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

package listview

import "encoding/json"

// Normalize returns a copy of rec with every cataloged value coerced to its
// view field type: JSON numbers become int64 for integer fields, 0/1 and
// numeric values become booleans for boolean fields, byte slices become
// strings. Fields absent from the catalog and nil values pass through
// unchanged. The input record is not modified.
func Normalize(view *View, rec Record) Record {
	out := make(Record, len(rec))
	for name, val := range rec {
		field, ok := view.Field(name)
		if !ok || val == nil {
			out[name] = val
			continue
		}

		switch field.Type {
		case FieldTypeBoolean:
			switch v := val.(type) {
			case bool:
				out[name] = v
			case int64:
				out[name] = v != 0
			case float64:
				out[name] = v != 0
			case json.Number:
				f, err := v.Float64()
				if err == nil {
					out[name] = f != 0
				} else {
					out[name] = val
				}
			default:
				out[name] = val
			}
		case FieldTypeString:
			switch v := val.(type) {
			case string:
				out[name] = v
			case []byte:
				out[name] = string(v)
			default:
				out[name] = val
			}
		case FieldTypeInteger:
			switch v := val.(type) {
			case int64:
				out[name] = v
			case int:
				out[name] = int64(v)
			case float64:
				out[name] = int64(v)
			case json.Number:
				i, err := v.Int64()
				if err == nil {
					out[name] = i
				} else {
					out[name] = val
				}
			default:
				out[name] = val
			}
		case FieldTypeNumber:
			switch v := val.(type) {
			case float64:
				out[name] = v
			case int64:
				out[name] = float64(v)
			case int:
				out[name] = float64(v)
			case json.Number:
				f, err := v.Float64()
				if err == nil {
					out[name] = f
				} else {
					out[name] = val
				}
			default:
				out[name] = val
			}
		default:
			out[name] = val
		}
	}
	return out
}

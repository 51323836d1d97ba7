package listview

import (
	"sort"
	"strings"
)

// sortRecords stable-sorts records in place by the given field. String
// fields compare lexicographically; number, integer, and boolean fields
// compare numerically with booleans coerced to 0/1. Missing values sort as
// the empty string or zero. Descending order inverts the comparison rather
// than reversing the slice, so equal keys keep their input relative order
// in both directions.
func sortRecords(records []Record, field Field, ascending bool) {
	sort.SliceStable(records, func(i, j int) bool {
		c := compareValues(field, records[i][field.Name], records[j][field.Name])
		if ascending {
			return c < 0
		}
		return c > 0
	})
}

// compareValues returns -1, 0, or 1 ordering a against b under the field's
// comparator rule.
func compareValues(field Field, a, b any) int {
	if field.Type == FieldTypeString {
		return strings.Compare(asString(a), asString(b))
	}
	av, bv := asFloat64(a), asFloat64(b)
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

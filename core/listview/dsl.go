// Package listview implements the client-side list derivation engine: it
// takes a raw collection of records plus a declarative filter/sort
// specification and produces an ordered, filtered projection ready for
// display. The engine owns no I/O and holds no state between calls; each
// derivation is an independent, pure computation.
package listview

// Record is one item in a displayed list (a user, a subscriber, a quote, or
// a tag), represented as a flat mapping from field name to value. Values are
// the flat JSON scalar types: string, number, boolean, or nil.
type Record map[string]any

// FieldType represents the flat field types a view can describe.
type FieldType string

const (
	FieldTypeString  FieldType = "string"  // Text data
	FieldTypeNumber  FieldType = "number"  // Floating-point numeric data
	FieldTypeInteger FieldType = "integer" // Integral numeric data
	FieldTypeBoolean FieldType = "boolean" // True/false values
)

// Field describes one field of a record type: its name, its type (which
// drives the sort comparator), and whether free-text search inspects it.
type Field struct {
	Name       string    `json:"name"`
	Type       FieldType `json:"type"`
	Searchable bool      `json:"searchable,omitempty"`
}

// View is the field catalog for a record type. Sort fields are validated
// against the catalog, and the catalog decides which fields the search
// predicate matches and how each field compares.
type View struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Field looks up a field definition by name.
func (v *View) Field(name string) (Field, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// EnumAll is the sentinel enum-filter value meaning "no constraint".
const EnumAll = "all"

// CustomCondition applies a named predicate registered on the engine to a
// record field, with an opaque argument. Unregistered predicate names fail
// the derivation.
type CustomCondition struct {
	Predicate string `json:"predicate"`
	Field     string `json:"field"`
	Arg       any    `json:"arg,omitempty"`
}

// FilterSpec is the declarative set of active filter predicates. All
// configured predicates combine with logical AND; a record must pass every
// one of them to survive.
type FilterSpec struct {
	// SearchText is matched case-insensitively against every searchable
	// field of the view. The empty string excludes nothing.
	SearchText string `json:"searchText,omitempty"`
	// BooleanFlags maps field names to a required boolean value. A missing
	// or null field normalizes to false rather than raising an error.
	BooleanFlags map[string]bool `json:"booleanFlags,omitempty"`
	// EnumFields maps field names to a required exact value, or EnumAll to
	// lift the constraint. A missing field normalizes to the empty string.
	EnumFields map[string]string `json:"enumFields,omitempty"`
	// Custom applies engine-registered predicate functions.
	Custom []CustomCondition `json:"custom,omitempty"`
}

// SortSpec is the declarative sort field and direction. Field must name a
// field in the active view's catalog; the engine fails fast otherwise.
type SortSpec struct {
	Field     string `json:"field"`
	Ascending bool   `json:"ascending"`
}

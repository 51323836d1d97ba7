package listview

// FilterBuilder provides a fluent API for building FilterSpec values.
// Screens assemble their active filters through the builder instead of
// hand-writing map literals.
type FilterBuilder struct {
	spec FilterSpec
}

// NewFilterBuilder creates a new, empty filter builder instance.
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{}
}

// Search sets the free-text search predicate.
func (b *FilterBuilder) Search(text string) *FilterBuilder {
	b.spec.SearchText = text
	return b
}

// Flag requires a boolean field to equal want.
func (b *FilterBuilder) Flag(field string, want bool) *FilterBuilder {
	if b.spec.BooleanFlags == nil {
		b.spec.BooleanFlags = make(map[string]bool)
	}
	b.spec.BooleanFlags[field] = want
	return b
}

// Enum requires a field to equal value exactly, or lifts the constraint
// when value is EnumAll.
func (b *FilterBuilder) Enum(field, value string) *FilterBuilder {
	if b.spec.EnumFields == nil {
		b.spec.EnumFields = make(map[string]string)
	}
	b.spec.EnumFields[field] = value
	return b
}

// Where applies a named custom predicate to a field.
func (b *FilterBuilder) Where(predicate, field string, arg any) *FilterBuilder {
	b.spec.Custom = append(b.spec.Custom, CustomCondition{
		Predicate: predicate,
		Field:     field,
		Arg:       arg,
	})
	return b
}

// Reset clears all configured predicates, returning the builder to its
// initial state.
func (b *FilterBuilder) Reset() *FilterBuilder {
	b.spec = FilterSpec{}
	return b
}

// Build returns the constructed FilterSpec.
func (b *FilterBuilder) Build() FilterSpec {
	return b.spec
}

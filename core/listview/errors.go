package listview

import "fmt"

// InvalidSortFieldError reports a sort field that is not part of the active
// view's catalog. This is caller misconfiguration and is surfaced as a hard
// error rather than a silent no-op.
type InvalidSortFieldError struct {
	View  string
	Field string
}

func (e *InvalidSortFieldError) Error() string {
	return fmt.Sprintf("invalid sort field %q for view %q", e.Field, e.View)
}

// UnknownPredicateError reports a custom filter condition that names a
// predicate never registered with the engine.
type UnknownPredicateError struct {
	Name string
}

func (e *UnknownPredicateError) Error() string {
	return fmt.Sprintf("unregistered predicate function: %s", e.Name)
}

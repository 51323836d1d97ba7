package listview

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// PredicateFunc is a pure Go function that performs custom filtering logic
// on a record. It takes the record, the field the condition names, and the
// condition's argument, and returns true if the record passes the filter.
type PredicateFunc func(rec Record, field string, arg any) (bool, error)

// Engine derives render-ready projections from raw record collections.
// The only mutable state it carries is the custom predicate registry; the
// derivation itself is pure, so a single Engine is safe to share across
// callers and invoke concurrently.
type Engine struct {
	predicates map[string]PredicateFunc
	mu         sync.RWMutex
	logger     *zap.Logger
}

// NewEngine creates a new Engine instance.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		predicates: make(map[string]PredicateFunc),
		logger:     logger,
	}
}

// RegisterPredicate registers a Go function for custom filtering.
func (e *Engine) RegisterPredicate(name string, fn PredicateFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.predicates[name] = fn
	e.logger.Info("Registered predicate function", zap.String("name", name))
}

// RegisterPredicates registers multiple predicate functions from a map.
func (e *Engine) RegisterPredicates(functionMap map[string]PredicateFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for name, fn := range functionMap {
		e.predicates[name] = fn
		e.logger.Info("Registered predicate function", zap.String("name", name))
	}
}

// Derive produces the filtered, ordered projection of records for a view.
// A record survives when every configured predicate in filters is true;
// survivors are stable-sorted per sort. The input slice and its records are
// never mutated, and the result is a fresh slice (empty, never nil, when
// nothing matches).
//
// An unknown sort.Field is a hard error and yields no partial result.
func (e *Engine) Derive(view *View, records []Record, filters FilterSpec, sort SortSpec) ([]Record, error) {
	if view == nil {
		return nil, fmt.Errorf("derive requires a view")
	}
	sortField, ok := view.Field(sort.Field)
	if !ok {
		return nil, &InvalidSortFieldError{View: view.Name, Field: sort.Field}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	search := strings.ToLower(filters.SearchText)
	result := make([]Record, 0, len(records))
	for _, rec := range records {
		passes, err := e.evaluate(view, rec, filters, search)
		if err != nil {
			return nil, err
		}
		if passes {
			result = append(result, rec)
		}
	}
	e.logger.Debug("Records remaining after filters",
		zap.String("view", view.Name),
		zap.Int("in", len(records)),
		zap.Int("out", len(result)))

	sortRecords(result, sortField, sort.Ascending)
	return result, nil
}

// evaluate AND-combines the search, boolean-flag, enum, and custom
// predicates for a single record. Callers hold the registry read lock.
func (e *Engine) evaluate(view *View, rec Record, filters FilterSpec, search string) (bool, error) {
	if search != "" && !e.matchesSearch(view, rec, search) {
		return false, nil
	}
	for field, want := range filters.BooleanFlags {
		if asBool(rec[field]) != want {
			return false, nil
		}
	}
	for field, want := range filters.EnumFields {
		if want == EnumAll {
			continue
		}
		if asString(rec[field]) != want {
			return false, nil
		}
	}
	for _, cond := range filters.Custom {
		fn, ok := e.predicates[cond.Predicate]
		if !ok {
			return false, &UnknownPredicateError{Name: cond.Predicate}
		}
		passes, err := fn(rec, cond.Field, cond.Arg)
		if err != nil {
			return false, fmt.Errorf("predicate %q failed for record %+v: %w", cond.Predicate, rec, err)
		}
		if !passes {
			return false, nil
		}
	}
	return true, nil
}

// matchesSearch reports whether the lowercase of any searchable field
// contains the already-lowercased search text.
func (e *Engine) matchesSearch(view *View, rec Record, search string) bool {
	for _, f := range view.Fields {
		if !f.Searchable {
			continue
		}
		if strings.Contains(strings.ToLower(asString(rec[f.Name])), search) {
			return true
		}
	}
	return false
}

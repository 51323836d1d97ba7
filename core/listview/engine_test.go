package listview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewEngine(t *testing.T) {
	e := NewEngine(nil)
	assert.NotNil(t, e)
	assert.NotNil(t, e.predicates)
	assert.NotNil(t, e.logger)

	e = NewEngine(zap.NewNop())
	assert.NotNil(t, e)
}

func TestEngine_RegisterPredicate(t *testing.T) {
	e := NewEngine(nil)
	fn := func(rec Record, field string, arg any) (bool, error) { return true, nil }
	e.RegisterPredicate("has_tag", fn)
	assert.Contains(t, e.predicates, "has_tag")
}

func TestEngine_RegisterPredicates(t *testing.T) {
	e := NewEngine(nil)
	e.RegisterPredicates(map[string]PredicateFunc{
		"p1": func(rec Record, field string, arg any) (bool, error) { return true, nil },
		"p2": func(rec Record, field string, arg any) (bool, error) { return true, nil },
	})
	assert.Contains(t, e.predicates, "p1")
	assert.Contains(t, e.predicates, "p2")
}

func userRecords() []Record {
	return []Record{
		{"id": int64(1), "email": "b@x.com", "username": "bea", "is_admin": true},
		{"id": int64(2), "email": "a@x.com", "username": "abe", "is_admin": false},
		{"id": int64(3), "email": "c@y.org", "username": "cat", "is_admin": false},
	}
}

func TestEngine_Derive(t *testing.T) {
	e := NewEngine(zap.NewNop())
	byEmail := SortSpec{Field: "email", Ascending: true}

	t.Run("Empty records yield an empty result", func(t *testing.T) {
		out, err := e.Derive(Users, nil, FilterSpec{SearchText: "x"}, byEmail)
		assert.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)

		out, err = e.Derive(Users, []Record{}, FilterSpec{}, byEmail)
		assert.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("Empty search text excludes nothing", func(t *testing.T) {
		out, err := e.Derive(Users, userRecords(), FilterSpec{SearchText: ""}, byEmail)
		assert.NoError(t, err)
		assert.Len(t, out, 3)
	})

	t.Run("Enum all plus empty flags is a pure sort", func(t *testing.T) {
		records := []Record{
			{"email": "b@x.com", "is_admin": true},
			{"email": "a@x.com", "is_admin": false},
		}
		filters := FilterSpec{EnumFields: map[string]string{"role": EnumAll}}
		out, err := e.Derive(Users, records, filters, byEmail)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "a@x.com", out[0]["email"])
		assert.Equal(t, "b@x.com", out[1]["email"])
	})

	t.Run("Boolean flag keeps only matching records", func(t *testing.T) {
		records := []Record{
			{"email": "b@x.com", "is_admin": true},
			{"email": "a@x.com", "is_admin": false},
		}
		filters := FilterSpec{BooleanFlags: map[string]bool{"is_admin": true}}
		out, err := e.Derive(Users, records, filters, byEmail)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "b@x.com", out[0]["email"])
	})

	t.Run("Missing boolean field normalizes to false", func(t *testing.T) {
		records := []Record{
			{"email": "a@x.com"},
			{"email": "b@x.com", "is_admin": nil},
			{"email": "c@y.org", "is_admin": true},
		}
		filters := FilterSpec{BooleanFlags: map[string]bool{"is_admin": false}}
		out, err := e.Derive(Users, records, filters, byEmail)
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("Search matches case-insensitively across searchable fields", func(t *testing.T) {
		out, err := e.Derive(Users, userRecords(), FilterSpec{SearchText: "BEA"}, byEmail)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "b@x.com", out[0]["email"])

		// "x.com" only appears in email, not username.
		out, err = e.Derive(Users, userRecords(), FilterSpec{SearchText: "x.com"}, byEmail)
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("Search does not inspect unsearchable fields", func(t *testing.T) {
		out, err := e.Derive(Users, userRecords(), FilterSpec{SearchText: "true"}, byEmail)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("Search with zero matches yields empty, not nil", func(t *testing.T) {
		out, err := e.Derive(Users, userRecords(), FilterSpec{SearchText: "zzz"}, byEmail)
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("Enum constraint requires exact match", func(t *testing.T) {
		records := []Record{
			{"email": "a@x.com", "frequency": "daily"},
			{"email": "b@x.com", "frequency": "weekly"},
		}
		filters := FilterSpec{EnumFields: map[string]string{"frequency": "weekly"}}
		out, err := e.Derive(Subscribers, records, filters, byEmail)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "b@x.com", out[0]["email"])
	})

	t.Run("Predicates combine with AND", func(t *testing.T) {
		records := []Record{
			{"email": "admin@x.com", "username": "root", "is_admin": true},
			{"email": "admin@y.org", "username": "boss", "is_admin": false},
		}
		filters := FilterSpec{
			SearchText:   "admin",
			BooleanFlags: map[string]bool{"is_admin": true},
		}
		out, err := e.Derive(Users, records, filters, byEmail)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "admin@x.com", out[0]["email"])
	})

	t.Run("Unknown sort field is a hard error with no partial result", func(t *testing.T) {
		out, err := e.Derive(Users, userRecords(), FilterSpec{}, SortSpec{Field: "shoe_size", Ascending: true})
		assert.Nil(t, out)
		var sortErr *InvalidSortFieldError
		require.ErrorAs(t, err, &sortErr)
		assert.Equal(t, "shoe_size", sortErr.Field)
		assert.Equal(t, "users", sortErr.View)
	})

	t.Run("Idempotence", func(t *testing.T) {
		records := userRecords()
		filters := FilterSpec{SearchText: "x.com"}
		first, err := e.Derive(Users, records, filters, byEmail)
		require.NoError(t, err)
		second, err := e.Derive(Users, records, filters, byEmail)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Input collection is not mutated", func(t *testing.T) {
		records := userRecords()
		_, err := e.Derive(Users, records, FilterSpec{SearchText: "a"}, SortSpec{Field: "email", Ascending: false})
		require.NoError(t, err)
		assert.Equal(t, userRecords(), records)
	})
}

func TestEngine_Derive_CustomPredicates(t *testing.T) {
	e := NewEngine(zap.NewNop())
	e.RegisterPredicate("min_length", func(rec Record, field string, arg any) (bool, error) {
		s, ok := rec[field].(string)
		if !ok {
			return false, nil
		}
		min, ok := arg.(int)
		if !ok {
			return false, errors.New("min_length requires an int argument")
		}
		return len(s) >= min, nil
	})

	records := []Record{
		{"quote": "Be here now.", "author": "Ram Dass"},
		{"quote": "The obstacle is the way, and the way is long.", "author": "Marcus Aurelius"},
	}
	sort := SortSpec{Field: "author", Ascending: true}

	t.Run("Registered predicate filters records", func(t *testing.T) {
		filters := NewFilterBuilder().Where("min_length", "quote", 20).Build()
		out, err := e.Derive(Quotes, records, filters, sort)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Marcus Aurelius", out[0]["author"])
	})

	t.Run("Unregistered predicate is an error", func(t *testing.T) {
		filters := NewFilterBuilder().Where("no_such_predicate", "quote", nil).Build()
		out, err := e.Derive(Quotes, records, filters, sort)
		assert.Nil(t, out)
		var predErr *UnknownPredicateError
		require.ErrorAs(t, err, &predErr)
		assert.Equal(t, "no_such_predicate", predErr.Name)
	})

	t.Run("Predicate evaluation errors propagate", func(t *testing.T) {
		filters := NewFilterBuilder().Where("min_length", "quote", "not an int").Build()
		_, err := e.Derive(Quotes, records, filters, sort)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "min_length")
	})
}

package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEngine_Derive_Sorting(t *testing.T) {
	e := NewEngine(zap.NewNop())

	t.Run("String fields compare lexicographically", func(t *testing.T) {
		records := []Record{
			{"email": "c@y.org"},
			{"email": "a@x.com"},
			{"email": "b@x.com"},
		}
		out, err := e.Derive(Users, records, FilterSpec{}, SortSpec{Field: "email", Ascending: true})
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", out[0]["email"])
		assert.Equal(t, "b@x.com", out[1]["email"])
		assert.Equal(t, "c@y.org", out[2]["email"])
	})

	t.Run("Integer fields compare numerically", func(t *testing.T) {
		records := []Record{
			{"id": int64(10), "quote": "j"},
			{"id": int64(2), "quote": "b"},
			{"id": int64(1), "quote": "a"},
		}
		out, err := e.Derive(Quotes, records, FilterSpec{}, SortSpec{Field: "id", Ascending: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), out[0]["id"])
		assert.Equal(t, int64(2), out[1]["id"])
		assert.Equal(t, int64(10), out[2]["id"])
	})

	t.Run("Boolean fields coerce to zero and one", func(t *testing.T) {
		records := []Record{
			{"email": "admin@x.com", "is_admin": true},
			{"email": "user@x.com", "is_admin": false},
		}
		out, err := e.Derive(Users, records, FilterSpec{}, SortSpec{Field: "is_admin", Ascending: true})
		require.NoError(t, err)
		assert.Equal(t, "user@x.com", out[0]["email"])
		assert.Equal(t, "admin@x.com", out[1]["email"])
	})

	t.Run("Missing values sort as empty string or zero", func(t *testing.T) {
		records := []Record{
			{"email": "b@x.com"},
			{"username": "no-email"},
			{"email": "a@x.com"},
		}
		out, err := e.Derive(Users, records, FilterSpec{}, SortSpec{Field: "email", Ascending: true})
		require.NoError(t, err)
		assert.Equal(t, "no-email", out[0]["username"])
		assert.Equal(t, "a@x.com", out[1]["email"])

		numeric := []Record{
			{"id": int64(5), "quote": "x"},
			{"quote": "missing id"},
		}
		out, err = e.Derive(Quotes, numeric, FilterSpec{}, SortSpec{Field: "id", Ascending: true})
		require.NoError(t, err)
		assert.Equal(t, "missing id", out[0]["quote"])
	})

	t.Run("Stability: equal keys keep input relative order", func(t *testing.T) {
		records := []Record{
			{"id": int64(1), "email": "dup@x.com", "username": "first"},
			{"id": int64(2), "email": "dup@x.com", "username": "second"},
			{"id": int64(3), "email": "dup@x.com", "username": "third"},
		}
		for _, ascending := range []bool{true, false} {
			out, err := e.Derive(Users, records, FilterSpec{}, SortSpec{Field: "email", Ascending: ascending})
			require.NoError(t, err)
			assert.Equal(t, "first", out[0]["username"])
			assert.Equal(t, "second", out[1]["username"])
			assert.Equal(t, "third", out[2]["username"])
		}
	})

	t.Run("Descending reverses ascending when no ties exist", func(t *testing.T) {
		records := userRecords()
		asc, err := e.Derive(Users, records, FilterSpec{}, SortSpec{Field: "email", Ascending: true})
		require.NoError(t, err)
		desc, err := e.Derive(Users, records, FilterSpec{}, SortSpec{Field: "email", Ascending: false})
		require.NoError(t, err)
		require.Equal(t, len(asc), len(desc))
		for i := range asc {
			assert.Equal(t, asc[i], desc[len(desc)-1-i])
		}
	})
}

func TestCompareValues(t *testing.T) {
	str := Field{Name: "f", Type: FieldTypeString}
	num := Field{Name: "f", Type: FieldTypeNumber}

	assert.Equal(t, -1, compareValues(str, "a", "b"))
	assert.Equal(t, 1, compareValues(str, "b", "a"))
	assert.Equal(t, 0, compareValues(str, "a", "a"))
	assert.Equal(t, 0, compareValues(str, nil, ""))

	assert.Equal(t, -1, compareValues(num, 1.5, 2.5))
	assert.Equal(t, 1, compareValues(num, int64(3), 2.5))
	assert.Equal(t, 0, compareValues(num, nil, 0.0))
	assert.Equal(t, 1, compareValues(num, true, false))
}

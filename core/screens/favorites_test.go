package screens

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quoteme/go-quoteme/core/listview"
)

type fakeFavoritesAPI struct {
	favorites []listview.Record
	listErr   error
	added     []int64
	removed   []int64
}

func (f *fakeFavoritesAPI) ListFavorites(ctx context.Context) ([]listview.Record, error) {
	return f.favorites, f.listErr
}

func (f *fakeFavoritesAPI) AddFavorite(ctx context.Context, quoteID int64) error {
	f.added = append(f.added, quoteID)
	return nil
}

func (f *fakeFavoritesAPI) RemoveFavorite(ctx context.Context, quoteID int64) error {
	f.removed = append(f.removed, quoteID)
	return nil
}

type fakeMirror struct {
	records  []listview.Record
	replaced int
}

func (m *fakeMirror) List(ctx context.Context) ([]listview.Record, error) {
	return m.records, nil
}

func (m *fakeMirror) Add(ctx context.Context, rec listview.Record) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *fakeMirror) Remove(ctx context.Context, id int64) error {
	kept := m.records[:0]
	for _, rec := range m.records {
		if recID, _ := rec["id"].(int64); recID != id {
			kept = append(kept, rec)
		}
	}
	m.records = kept
	return nil
}

func (m *fakeMirror) ReplaceAll(ctx context.Context, records []listview.Record) error {
	m.replaced++
	m.records = append([]listview.Record(nil), records...)
	return nil
}

func favoriteRecord(id int64, quote, author string) listview.Record {
	return listview.Record{"id": id, "quote": quote, "author": author, "tag": "wisdom"}
}

func TestFavoritesScreenRefresh(t *testing.T) {
	api := &fakeFavoritesAPI{favorites: []listview.Record{
		favoriteRecord(1, "Know thyself.", "Socrates"),
		favoriteRecord(2, "Be here now.", "Ram Dass"),
	}}
	mirror := &fakeMirror{}
	screen := NewFavoritesScreen(api, mirror, listview.NewEngine(zap.NewNop()), testBus(t))
	ctx := context.Background()

	require.NoError(t, screen.Refresh(ctx))
	assert.Equal(t, 1, mirror.replaced)
	assert.Len(t, mirror.records, 2)

	out, err := screen.Visible()
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Default sort is author ascending.
	assert.Equal(t, "Ram Dass", out[0]["author"])
}

func TestFavoritesScreenRefreshFallsBackToMirror(t *testing.T) {
	api := &fakeFavoritesAPI{listErr: errors.New("backend down")}
	mirror := &fakeMirror{records: []listview.Record{
		favoriteRecord(7, "Cached wisdom.", "Anon"),
	}}
	screen := NewFavoritesScreen(api, mirror, listview.NewEngine(zap.NewNop()), testBus(t))

	err := screen.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")

	// The error is reported, but the mirror's contents are still served.
	out, err := screen.Visible()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(7), out[0]["id"])
}

func TestFavoritesScreenAddRemove(t *testing.T) {
	api := &fakeFavoritesAPI{}
	mirror := &fakeMirror{}
	screen := NewFavoritesScreen(api, mirror, listview.NewEngine(zap.NewNop()), testBus(t))
	ctx := context.Background()

	rec := favoriteRecord(3, "Less is more.", "Mies")
	require.NoError(t, screen.Add(ctx, rec))
	assert.Equal(t, []int64{3}, api.added)
	assert.Len(t, mirror.records, 1)

	out, err := screen.Visible()
	require.NoError(t, err)
	require.Len(t, out, 1)

	require.NoError(t, screen.Remove(ctx, 3))
	assert.Equal(t, []int64{3}, api.removed)
	assert.Empty(t, mirror.records)

	out, err = screen.Visible()
	require.NoError(t, err)
	assert.Empty(t, out)

	t.Run("Record without id is rejected", func(t *testing.T) {
		err := screen.Add(ctx, listview.Record{"quote": "no id"})
		assert.Error(t, err)
		assert.Len(t, api.added, 1)
	})
}

func TestFavoritesScreenSearch(t *testing.T) {
	api := &fakeFavoritesAPI{favorites: []listview.Record{
		favoriteRecord(1, "Know thyself.", "Socrates"),
		favoriteRecord(2, "Be here now.", "Ram Dass"),
	}}
	screen := NewFavoritesScreen(api, &fakeMirror{}, listview.NewEngine(zap.NewNop()), testBus(t))
	require.NoError(t, screen.Refresh(context.Background()))

	screen.SetSearch("thyself")
	out, err := screen.Visible()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Socrates", out[0]["author"])
}

package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/quoteme/go-quoteme/core/listview"
)

// FavoritesAPI is the slice of the API client the favorites screen
// depends on.
type FavoritesAPI interface {
	ListFavorites(ctx context.Context) ([]listview.Record, error)
	AddFavorite(ctx context.Context, quoteID int64) error
	RemoveFavorite(ctx context.Context, quoteID int64) error
}

// FavoritesMirror is the local store the screen falls back to when the
// backend is unreachable. sqlite.FavoritesStore is the production
// implementation.
type FavoritesMirror interface {
	List(ctx context.Context) ([]listview.Record, error)
	Add(ctx context.Context, rec listview.Record) error
	Remove(ctx context.Context, id int64) error
	ReplaceAll(ctx context.Context, records []listview.Record) error
}

// FavoritesScreen backs the favorites screen. The backend copy is
// authoritative; every successful refresh rewrites the local mirror, and a
// failed refresh serves the mirror while still reporting the failure so
// the UI can show its retry affordance over stale data.
type FavoritesScreen struct {
	api    FavoritesAPI
	mirror FavoritesMirror
	engine *listview.Engine
	bus    *Bus

	mu      sync.RWMutex
	records []listview.Record
	search  string
	sort    listview.SortSpec
}

// NewFavoritesScreen creates the screen state with the default sort
// (author ascending).
func NewFavoritesScreen(api FavoritesAPI, mirror FavoritesMirror, engine *listview.Engine, bus *Bus) *FavoritesScreen {
	return &FavoritesScreen{
		api:    api,
		mirror: mirror,
		engine: engine,
		bus:    bus,
		sort:   listview.SortSpec{Field: "author", Ascending: true},
	}
}

// Refresh reloads favorites from the backend and rewrites the mirror. On
// backend failure the screen falls back to the mirror's contents and still
// returns the error.
func (s *FavoritesScreen) Refresh(ctx context.Context) error {
	return s.bus.withRefreshEvents("favorites", func() (int, error) {
		records, err := s.api.ListFavorites(ctx)
		if err != nil {
			if cached, cacheErr := s.mirror.List(ctx); cacheErr == nil {
				s.mu.Lock()
				s.records = cached
				s.mu.Unlock()
			}
			return 0, err
		}

		if err := s.mirror.ReplaceAll(ctx, records); err != nil {
			return 0, err
		}
		s.mu.Lock()
		s.records = records
		s.mu.Unlock()
		return len(records), nil
	})
}

// Add marks a quote as a favorite on the backend and mirrors it locally.
func (s *FavoritesScreen) Add(ctx context.Context, rec listview.Record) error {
	id, ok := rec["id"].(int64)
	if !ok {
		return fmt.Errorf("favorite record has no id: %+v", rec)
	}
	if err := s.api.AddFavorite(ctx, id); err != nil {
		return err
	}
	if err := s.mirror.Add(ctx, rec); err != nil {
		return err
	}

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
	s.bus.stateChanged("favorites")
	return nil
}

// Remove unmarks a favorite on the backend and in the mirror.
func (s *FavoritesScreen) Remove(ctx context.Context, id int64) error {
	if err := s.api.RemoveFavorite(ctx, id); err != nil {
		return err
	}
	if err := s.mirror.Remove(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.records[:0]
	for _, rec := range s.records {
		if recID, ok := rec["id"].(int64); !ok || recID != id {
			kept = append(kept, rec)
		}
	}
	s.records = kept
	s.mu.Unlock()
	s.bus.stateChanged("favorites")
	return nil
}

// SetSearch updates the free-text filter.
func (s *FavoritesScreen) SetSearch(text string) {
	s.mu.Lock()
	s.search = text
	s.mu.Unlock()
	s.bus.stateChanged("favorites")
}

// SetSort updates the sort field and direction.
func (s *FavoritesScreen) SetSort(field string, ascending bool) {
	s.mu.Lock()
	s.sort = listview.SortSpec{Field: field, Ascending: ascending}
	s.mu.Unlock()
	s.bus.stateChanged("favorites")
}

// Visible derives the render-ready favorites list from the current state.
func (s *FavoritesScreen) Visible() ([]listview.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filters := listview.NewFilterBuilder().Search(s.search).Build()
	return s.engine.Derive(listview.Quotes, s.records, filters, s.sort)
}

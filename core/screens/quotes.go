package screens

import (
	"context"
	"sync"

	"github.com/quoteme/go-quoteme/core/listview"
)

// QuoteLister is the slice of the API client the quotes screen depends on.
type QuoteLister interface {
	ListQuotes(ctx context.Context) ([]listview.Record, error)
}

// QuotesScreen backs the quote management screen: free-text search across
// quote text and author, a tag filter, and a sortable list.
type QuotesScreen struct {
	api    QuoteLister
	engine *listview.Engine
	bus    *Bus

	mu      sync.RWMutex
	records []listview.Record
	search  string
	tag     string
	sort    listview.SortSpec
}

// NewQuotesScreen creates the screen state with the default sort (newest
// first) and the tag filter lifted.
func NewQuotesScreen(api QuoteLister, engine *listview.Engine, bus *Bus) *QuotesScreen {
	return &QuotesScreen{
		api:    api,
		engine: engine,
		bus:    bus,
		tag:    listview.EnumAll,
		sort:   listview.SortSpec{Field: "created_at", Ascending: false},
	}
}

// Refresh reloads the full quote collection from the backend.
func (s *QuotesScreen) Refresh(ctx context.Context) error {
	return s.bus.withRefreshEvents("quotes", func() (int, error) {
		records, err := s.api.ListQuotes(ctx)
		if err != nil {
			return 0, err
		}
		s.mu.Lock()
		s.records = records
		s.mu.Unlock()
		return len(records), nil
	})
}

// SetSearch updates the free-text filter.
func (s *QuotesScreen) SetSearch(text string) {
	s.mu.Lock()
	s.search = text
	s.mu.Unlock()
	s.bus.stateChanged("quotes")
}

// SetTag constrains the list to one tag, or lifts the constraint when
// passed listview.EnumAll.
func (s *QuotesScreen) SetTag(tag string) {
	s.mu.Lock()
	s.tag = tag
	s.mu.Unlock()
	s.bus.stateChanged("quotes")
}

// SetSort updates the sort field and direction.
func (s *QuotesScreen) SetSort(field string, ascending bool) {
	s.mu.Lock()
	s.sort = listview.SortSpec{Field: field, Ascending: ascending}
	s.mu.Unlock()
	s.bus.stateChanged("quotes")
}

// Visible derives the render-ready quote list from the current state.
func (s *QuotesScreen) Visible() ([]listview.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filters := listview.NewFilterBuilder().
		Search(s.search).
		Enum("tag", s.tag).
		Build()
	return s.engine.Derive(listview.Quotes, s.records, filters, s.sort)
}

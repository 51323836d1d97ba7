package screens

import (
	"context"
	"sync"

	"github.com/quoteme/go-quoteme/core/listview"
)

// SubscriberLister is the slice of the API client the subscribers screen
// depends on.
type SubscriberLister interface {
	ListSubscribers(ctx context.Context) ([]listview.Record, error)
}

// SubscribersScreen backs the daily-nuggets subscribers screen: a search
// box, an active-only toggle, a frequency filter, and a sortable list.
type SubscribersScreen struct {
	api    SubscriberLister
	engine *listview.Engine
	bus    *Bus

	mu         sync.RWMutex
	records    []listview.Record
	search     string
	activeOnly bool
	frequency  string
	sort       listview.SortSpec
}

// NewSubscribersScreen creates the screen state with the default sort
// (email ascending) and the frequency filter lifted.
func NewSubscribersScreen(api SubscriberLister, engine *listview.Engine, bus *Bus) *SubscribersScreen {
	return &SubscribersScreen{
		api:       api,
		engine:    engine,
		bus:       bus,
		frequency: listview.EnumAll,
		sort:      listview.SortSpec{Field: "email", Ascending: true},
	}
}

// Refresh reloads the full subscriber collection from the backend.
func (s *SubscribersScreen) Refresh(ctx context.Context) error {
	return s.bus.withRefreshEvents("subscribers", func() (int, error) {
		records, err := s.api.ListSubscribers(ctx)
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
func (s *SubscribersScreen) SetSearch(text string) {
	s.mu.Lock()
	s.search = text
	s.mu.Unlock()
	s.bus.stateChanged("subscribers")
}

// SetActiveOnly toggles the active-subscribers-only filter.
func (s *SubscribersScreen) SetActiveOnly(only bool) {
	s.mu.Lock()
	s.activeOnly = only
	s.mu.Unlock()
	s.bus.stateChanged("subscribers")
}

// SetFrequency constrains the list to one delivery frequency, or lifts the
// constraint when passed listview.EnumAll.
func (s *SubscribersScreen) SetFrequency(frequency string) {
	s.mu.Lock()
	s.frequency = frequency
	s.mu.Unlock()
	s.bus.stateChanged("subscribers")
}

// SetSort updates the sort field and direction.
func (s *SubscribersScreen) SetSort(field string, ascending bool) {
	s.mu.Lock()
	s.sort = listview.SortSpec{Field: field, Ascending: ascending}
	s.mu.Unlock()
	s.bus.stateChanged("subscribers")
}

// Visible derives the render-ready subscriber list from the current state.
func (s *SubscribersScreen) Visible() ([]listview.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	builder := listview.NewFilterBuilder().
		Search(s.search).
		Enum("frequency", s.frequency)
	if s.activeOnly {
		builder.Flag("is_active", true)
	}
	return s.engine.Derive(listview.Subscribers, s.records, builder.Build(), s.sort)
}

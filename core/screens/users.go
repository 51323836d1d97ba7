package screens

import (
	"context"
	"sync"

	"github.com/quoteme/go-quoteme/core/listview"
)

// UserLister is the slice of the API client the users screen depends on.
type UserLister interface {
	ListUsers(ctx context.Context) ([]listview.Record, error)
}

// UsersScreen backs the admin user management screen: a search box, an
// admins-only toggle, and a sortable user list.
type UsersScreen struct {
	api    UserLister
	engine *listview.Engine
	bus    *Bus

	mu         sync.RWMutex
	records    []listview.Record
	search     string
	adminsOnly bool
	sort       listview.SortSpec
}

// NewUsersScreen creates the screen state with the default sort (email
// ascending) and no active filters.
func NewUsersScreen(api UserLister, engine *listview.Engine, bus *Bus) *UsersScreen {
	return &UsersScreen{
		api:    api,
		engine: engine,
		bus:    bus,
		sort:   listview.SortSpec{Field: "email", Ascending: true},
	}
}

// Refresh reloads the full user collection from the backend. Each refresh
// replaces the collection wholesale; there are no incremental updates.
func (s *UsersScreen) Refresh(ctx context.Context) error {
	return s.bus.withRefreshEvents("users", func() (int, error) {
		records, err := s.api.ListUsers(ctx)
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
func (s *UsersScreen) SetSearch(text string) {
	s.mu.Lock()
	s.search = text
	s.mu.Unlock()
	s.bus.stateChanged("users")
}

// SetAdminsOnly toggles the admins-only filter.
func (s *UsersScreen) SetAdminsOnly(only bool) {
	s.mu.Lock()
	s.adminsOnly = only
	s.mu.Unlock()
	s.bus.stateChanged("users")
}

// SetSort updates the sort field and direction.
func (s *UsersScreen) SetSort(field string, ascending bool) {
	s.mu.Lock()
	s.sort = listview.SortSpec{Field: field, Ascending: ascending}
	s.mu.Unlock()
	s.bus.stateChanged("users")
}

// Visible derives the render-ready user list from the current state.
func (s *UsersScreen) Visible() ([]listview.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	builder := listview.NewFilterBuilder().Search(s.search)
	if s.adminsOnly {
		builder.Flag("is_admin", true)
	}
	return s.engine.Derive(listview.Users, s.records, builder.Build(), s.sort)
}

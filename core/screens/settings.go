package screens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/quoteme/go-quoteme/sqlite"
)

// Delivery frequencies for daily nuggets.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// ErrLastCategory is returned when deselecting a category would leave the
// selection empty. At least one category must stay selected.
var ErrLastCategory = errors.New("at least one category must remain selected")

// DefaultCategories is the fixed set of nugget categories, all selected by
// default.
var DefaultCategories = []string{"inspiration", "life", "love", "success", "wisdom"}

const nuggetsPrefsKey = "nuggets_settings"

// CorruptPrefsError reports persisted settings that failed to decode. The
// settings reset to defaults AND the error is surfaced, so corruption is
// never silently absorbed but the screen stays usable.
type CorruptPrefsError struct {
	Key string
	Err error
}

func (e *CorruptPrefsError) Error() string {
	return fmt.Sprintf("corrupt preferences under %q: %v", e.Key, e.Err)
}

func (e *CorruptPrefsError) Unwrap() error { return e.Err }

type nuggetsPrefs struct {
	Categories []string `json:"categories"`
	Frequency  string   `json:"frequency"`
}

// NuggetsSettings backs the daily-nuggets settings screen: the category
// selection set and the delivery frequency, persisted in the prefs store.
type NuggetsSettings struct {
	prefs *sqlite.PrefsStore
	bus   *Bus

	mu        sync.Mutex
	selected  map[string]bool
	frequency string
}

// NewNuggetsSettings creates the settings state with every category
// selected and daily delivery.
func NewNuggetsSettings(prefs *sqlite.PrefsStore, bus *Bus) *NuggetsSettings {
	s := &NuggetsSettings{prefs: prefs, bus: bus}
	s.reset()
	return s
}

func (s *NuggetsSettings) reset() {
	s.selected = make(map[string]bool, len(DefaultCategories))
	for _, c := range DefaultCategories {
		s.selected[c] = true
	}
	s.frequency = FrequencyDaily
}

// Load reads persisted settings. A missing preference leaves the defaults
// in place and is not an error; an undecodable one resets to defaults and
// returns a *CorruptPrefsError.
func (s *NuggetsSettings) Load(ctx context.Context) error {
	raw, err := s.prefs.Get(ctx, nuggetsPrefsKey)
	if errors.Is(err, sqlite.ErrPrefNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var stored nuggetsPrefs
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.mu.Lock()
		s.reset()
		s.mu.Unlock()
		return &CorruptPrefsError{Key: nuggetsPrefsKey, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	if len(stored.Categories) > 0 {
		for c := range s.selected {
			s.selected[c] = false
		}
		for _, c := range stored.Categories {
			if _, known := s.selected[c]; known {
				s.selected[c] = true
			}
		}
		// A stored selection of only unknown categories would violate the
		// selection-count invariant; fall back to everything selected.
		if len(s.selectedLocked()) == 0 {
			for c := range s.selected {
				s.selected[c] = true
			}
		}
	}
	if stored.Frequency == FrequencyDaily || stored.Frequency == FrequencyWeekly {
		s.frequency = stored.Frequency
	}
	return nil
}

// Save persists the current settings.
func (s *NuggetsSettings) Save(ctx context.Context) error {
	s.mu.Lock()
	stored := nuggetsPrefs{
		Categories: s.selectedLocked(),
		Frequency:  s.frequency,
	}
	s.mu.Unlock()

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return s.prefs.Set(ctx, nuggetsPrefsKey, raw)
}

// Toggle flips a category's selection. Unknown categories are an error,
// and deselecting the last selected category returns ErrLastCategory with
// the selection unchanged.
func (s *NuggetsSettings) Toggle(category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, known := s.selected[category]
	if !known {
		return fmt.Errorf("unknown category %q", category)
	}
	if current && len(s.selectedLocked()) == 1 {
		return ErrLastCategory
	}
	s.selected[category] = !current

	s.bus.emit(createEvent(CategoriesChanged, "settings", nil, nil, time.Time{}))
	return nil
}

// SetFrequency updates the delivery frequency.
func (s *NuggetsSettings) SetFrequency(frequency string) error {
	if frequency != FrequencyDaily && frequency != FrequencyWeekly {
		return fmt.Errorf("unknown frequency %q", frequency)
	}
	s.mu.Lock()
	s.frequency = frequency
	s.mu.Unlock()
	s.bus.stateChanged("settings")
	return nil
}

// Frequency returns the current delivery frequency.
func (s *NuggetsSettings) Frequency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frequency
}

// Selected returns the selected categories in stable alphabetical order.
func (s *NuggetsSettings) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

func (s *NuggetsSettings) selectedLocked() []string {
	out := make([]string, 0, len(s.selected))
	for c, on := range s.selected {
		if on {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

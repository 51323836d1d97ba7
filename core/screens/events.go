// Package screens holds the externally-owned state objects behind each
// application screen. A screen owns its filter/sort state and its last
// fetched record collection, delegates derivation to the listview engine,
// and reports its lifecycle over a typed event bus.
package screens

import (
	"context"
	"sync"
	"time"

	events "github.com/asaidimu/go-events"
	"github.com/google/uuid"
)

// ScreenEventType defines the possible event types for screen operations.
type ScreenEventType string

const (
	RefreshStart      ScreenEventType = "screen:refresh:start"
	RefreshSuccess    ScreenEventType = "screen:refresh:success"
	RefreshFailed     ScreenEventType = "screen:refresh:failed"
	StateChanged      ScreenEventType = "screen:state:changed"
	CategoriesChanged ScreenEventType = "settings:categories:changed"
)

// ScreenEvent describes one screen lifecycle occurrence.
type ScreenEvent struct {
	Type      ScreenEventType `json:"type"`
	Timestamp int64           `json:"timestamp"` // Unix milliseconds
	Screen    string          `json:"screen"`
	Count     *int            `json:"count,omitempty"`    // records fetched, on refresh success
	Error     *string         `json:"error,omitempty"`    // failure message, on refresh failure
	Duration  *int64          `json:"duration,omitempty"` // operation duration in milliseconds
}

// EventCallback receives emitted screen events.
type EventCallback func(ctx context.Context, event ScreenEvent) error

// SubscriptionInfo describes a registered event subscription.
type SubscriptionInfo struct {
	ID          string          `json:"id"`
	Event       ScreenEventType `json:"event"`
	Unsubscribe func()
}

// Bus is the screen event bus. Subscriptions are identified by uuid so
// callers can unregister them individually.
type Bus struct {
	bus           *events.TypedEventBus[ScreenEvent]
	mu            sync.RWMutex
	subscriptions map[string]*SubscriptionInfo
}

// NewBus creates a screen event bus.
func NewBus() (*Bus, error) {
	bus, err := events.NewTypedEventBus[ScreenEvent](events.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return &Bus{
		bus:           bus,
		subscriptions: make(map[string]*SubscriptionInfo),
	}, nil
}

// Subscribe registers a callback for an event type and returns the
// subscription id.
func (b *Bus) Subscribe(event ScreenEventType, cb EventCallback) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	unsubscribe := b.bus.Subscribe(string(event), func(ctx context.Context, e ScreenEvent) error {
		return cb(ctx, e)
	})
	id := uuid.New().String()
	b.subscriptions[id] = &SubscriptionInfo{
		ID:          id,
		Event:       event,
		Unsubscribe: unsubscribe,
	}
	return id
}

// Unsubscribe removes a subscription by its id.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if info, ok := b.subscriptions[id]; ok {
		info.Unsubscribe()
		delete(b.subscriptions, id)
	}
}

// Subscriptions returns the currently active subscriptions.
func (b *Bus) Subscriptions() []SubscriptionInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subs := make([]SubscriptionInfo, 0, len(b.subscriptions))
	for _, sub := range b.subscriptions {
		subs = append(subs, *sub)
	}
	return subs
}

func (b *Bus) emit(event ScreenEvent) {
	if b != nil && b.bus != nil {
		b.bus.Emit(string(event.Type), event)
	}
}

func createEvent(eventType ScreenEventType, screen string, count *int, errStr *string, startTime time.Time) ScreenEvent {
	var duration *int64
	if !startTime.IsZero() {
		d := time.Since(startTime).Milliseconds()
		duration = &d
	}
	return ScreenEvent{
		Type:      eventType,
		Timestamp: time.Now().UnixMilli(),
		Screen:    screen,
		Count:     count,
		Error:     errStr,
		Duration:  duration,
	}
}

// withRefreshEvents wraps a reload with start, success, and failure events.
// fn returns the number of records fetched.
func (b *Bus) withRefreshEvents(screen string, fn func() (int, error)) error {
	startTime := time.Now()
	b.emit(createEvent(RefreshStart, screen, nil, nil, startTime))

	count, err := fn()
	if err != nil {
		errStr := err.Error()
		b.emit(createEvent(RefreshFailed, screen, nil, &errStr, startTime))
		return err
	}

	b.emit(createEvent(RefreshSuccess, screen, &count, nil, startTime))
	return nil
}

// stateChanged announces a filter or sort mutation on a screen.
func (b *Bus) stateChanged(screen string) {
	b.emit(createEvent(StateChanged, screen, nil, nil, time.Time{}))
}

// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/richdoc/internal/logger"
)

// Handler receives dispatched events.
type Handler func(e Event)

// SubscriptionID identifies a subscription for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Manager handles event subscriptions and dispatching.
//
// Handlers run synchronously, in subscription order, on a snapshot of the
// handler list taken when Dispatch starts. A handler may subscribe or
// unsubscribe (itself included) while an event is being dispatched; the
// change applies from the next Dispatch on.
type Manager struct {
	mu       sync.RWMutex
	nextID   SubscriptionID
	handlers map[Type][]subscription
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe adds a handler for eventType and returns its id.
func (m *Manager) Subscribe(eventType Type, handler Handler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.handlers[eventType] = append(m.handlers[eventType], subscription{id: id, handler: handler})
	logger.DebugTagf("event", "handler %d subscribed to %v", id, eventType)
	return id
}

// Unsubscribe removes a subscription. It reports whether id was found.
func (m *Manager) Unsubscribe(id SubscriptionID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for t, subs := range m.handlers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			// copy so a snapshot held by a running Dispatch is not disturbed
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			m.handlers[t] = next
			logger.DebugTagf("event", "handler %d unsubscribed from %v", id, t)
			return true
		}
	}
	return false
}

// Count returns the number of handlers subscribed to eventType.
func (m *Manager) Count(eventType Type) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[eventType])
}

// Dispatch sends an event to every handler registered for its type.
func (m *Manager) Dispatch(eventType Type, data any) {
	m.mu.RLock()
	subs := m.handlers[eventType]
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	m.mu.RUnlock()

	if len(snapshot) == 0 {
		return
	}
	logger.DebugTagf("event", "dispatching %v to %d handler(s)", eventType, len(snapshot))

	e := Event{Type: eventType, Data: data}
	for _, s := range snapshot {
		s.handler(e)
	}
}

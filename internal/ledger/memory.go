package ledger

import (
	"context"
	"sync"

	"regnet/pkg/platform/sentinel"
)

// InMemory is a map-backed State for tests and the dev loop. It mirrors
// the platform stub's contract: read-your-writes, absence as
// sentinel.ErrNotFound, total overwrite on Put, and events recorded in
// emission order.
type InMemory struct {
	mu     sync.RWMutex
	values map[string][]byte
	events []Event
}

// Event is one emitted ledger event, retained for assertions.
type Event struct {
	Name    string
	Payload []byte
}

func NewInMemory() *InMemory {
	return &InMemory{values: make(map[string][]byte)}
}

func (m *InMemory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *InMemory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

func (m *InMemory) SetEvent(name string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.events = append(m.events, Event{Name: name, Payload: stored})
	return nil
}

// Events returns the events emitted so far, oldest first.
func (m *InMemory) Events() []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Len reports the number of stored records.
func (m *InMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Package broadcast carries collection change notifications between the
// tabs of a browser profile, and between server instances sharing storage.
package broadcast

import (
	"context"
	"sync"
)

// Change announces that a persisted key was rewritten.
type Change struct {
	Profile string `json:"profile"`
	Key     string `json:"key"`
	// Origin is the id of the tab that made the change, if any.
	Origin string `json:"origin,omitempty"`
}

// Notifier publishes changes to every subscriber.
type Notifier interface {
	Publish(ctx context.Context, change Change) error
	// Subscribe registers fn and returns a func that removes it.
	Subscribe(fn func(Change)) (unsubscribe func())
}

// Compile-time interface checks.
var (
	_ Notifier = (*Memory)(nil)
	_ Notifier = (*Redis)(nil)
)

// Memory fans changes out to in-process subscribers. Callbacks run on the
// publishing goroutine.
type Memory struct {
	mu          sync.RWMutex
	nextID      uint64
	subscribers map[uint64]func(Change)
}

func NewMemory() *Memory {
	return &Memory{subscribers: make(map[uint64]func(Change))}
}

func (m *Memory) Publish(_ context.Context, change Change) error {
	m.deliver(change)
	return nil
}

func (m *Memory) deliver(change Change) {
	m.mu.RLock()
	fns := make([]func(Change), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	// called outside the lock so a callback may subscribe or unsubscribe
	for _, fn := range fns {
		fn(change)
	}
}

func (m *Memory) Subscribe(fn func(Change)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subscribers, id)
			m.mu.Unlock()
		})
	}
}

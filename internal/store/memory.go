package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory is a map-backed KV implementation for tests and ephemeral use.
//
// A mutex guards the map so Apply is atomic with respect to Get; the
// machine itself is single-writer, but tests may read concurrently.
type Memory struct {
	mu     sync.Mutex
	items  map[string][]byte
	closed bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

// Get returns the value stored under key, or ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("memory store: get %q: store closed", key)
	}
	v, ok := m.items[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	// Copy so callers cannot mutate stored bytes.
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Apply commits all operations under a single lock acquisition.
// Memory writes cannot fail partway, so the batch is trivially atomic.
func (m *Memory) Apply(_ context.Context, b *Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("memory store: apply: store closed")
	}
	for _, o := range b.ops {
		switch o.kind {
		case opPut:
			v := make([]byte, len(o.value))
			copy(v, o.value)
			m.items[o.key] = v
		case opDelete:
			delete(m.items, o.key)
		}
	}
	return nil
}

// Close marks the store closed; subsequent calls fail.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Len returns the number of stored keys. Used by tests.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

package store

import (
	"context"
	"sync"
)

// MemoryConfig configures the in-memory backend.
type MemoryConfig struct {
	// MaxEntries caps the number of stored entries. 0 means unbounded.
	// When the cap is exceeded, the oldest entry by insertion order is
	// evicted.
	MaxEntries int

	// OnEvict, if set, is called with the key of every evicted entry,
	// while the backend lock is not held.
	OnEvict func(key string)
}

// Memory is an in-memory Backend.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]any
	order   []string
	config  MemoryConfig
}

// NewMemory creates an in-memory backend.
func NewMemory(config MemoryConfig) *Memory {
	return &Memory{
		entries: make(map[string]any),
		config:  config,
	}
}

// Get retrieves a value. Returns (nil, false, nil) on miss.
func (m *Memory) Get(_ context.Context, key string) (any, bool, error) {
	m.mu.RLock()
	v, ok := m.entries[key]
	m.mu.RUnlock()
	return v, ok, nil
}

// PutIfAbsent stores a value unless the key is present.
func (m *Memory) PutIfAbsent(_ context.Context, key string, value any) error {
	var evicted []string
	m.mu.Lock()
	if _, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return nil
	}
	m.entries[key] = value
	m.order = append(m.order, key)
	for m.config.MaxEntries > 0 && len(m.entries) > m.config.MaxEntries {
		oldest := m.order[0]
		m.order = m.order[1:]
		if _, ok := m.entries[oldest]; !ok {
			// Deleted out of band; the order entry is stale.
			continue
		}
		delete(m.entries, oldest)
		evicted = append(evicted, oldest)
	}
	m.mu.Unlock()

	if m.config.OnEvict != nil {
		for _, k := range evicted {
			m.config.OnEvict(k)
		}
	}
	return nil
}

// Delete removes a value. Idempotent.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

var _ Backend = (*Memory)(nil)

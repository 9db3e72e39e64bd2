package repositories

import (
	"context"
	"sync"
)

// In-memory StateSlot. Nothing survives a restart.
type MemoryStateSlot struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStateSlot() *MemoryStateSlot {
	return &MemoryStateSlot{values: make(map[string]string)}
}

func (m *MemoryStateSlot) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStateSlot) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

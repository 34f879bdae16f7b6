package preferencestore

import (
	"context"
	"sync"
)

// Memory is an in-process Backend, used in tests and when no database is configured.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func memoryKey(browserID, key string) string { return browserID + "\x00" + key }

func (m *Memory) Load(_ context.Context, browserID, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[memoryKey(browserID, key)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (m *Memory) Save(_ context.Context, browserID, key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[memoryKey(browserID, key)] = append([]byte(nil), raw...)
	return nil
}

// Put stores raw bytes directly, bypassing encoding. Tests use it to plant corrupt values.
func (m *Memory) Put(browserID, key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[memoryKey(browserID, key)] = raw
}

package kv

import (
	"context"
	"strings"
	"sync"
)

// Compile-time interface checks.
var (
	_ Store = (*Memory)(nil)
	_ Sizer = (*Memory)(nil)
)

// Memory is an in-memory store. Safe for concurrent access.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *Memory) Usage(ctx context.Context, namespace string) (int64, error) {
	prefix := namespace + "/"
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for key, value := range m.values {
		if strings.HasPrefix(key, prefix) {
			total += int64(len(value))
		}
	}
	return total, nil
}

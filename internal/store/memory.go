package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryKV is a map-backed KV. It does not survive restarts.
type MemoryKV struct {
	mu      sync.RWMutex
	data    map[string]string
	getErr  error
	putErr  error
	putHits int
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// FailWith makes subsequent Get and Put calls fail with the given errors,
// wrapped in ErrUnavailable. Pass nil to restore normal behavior.
func (m *MemoryKV) FailWith(getErr, putErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = getErr
	m.putErr = putErr
}

// Puts returns how many Put calls succeeded.
func (m *MemoryKV) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.putHits
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return "", fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryKV) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return fmt.Errorf("%w: put %s: %v", ErrUnavailable, key, m.putErr)
	}
	m.data[key] = value
	m.putHits++
	return nil
}

func (m *MemoryKV) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, fmt.Errorf("%w: keys: %v", ErrUnavailable, m.getErr)
	}
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryKV) Close() error { return nil }

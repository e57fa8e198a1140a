package storage

import (
	"context"
	"sync"
)

// MemoryStore is an ObjectStore kept in process memory. PutErr, when set, fails every Put.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	PutErr  error
	Puts    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Put(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Puts++
	if m.PutErr != nil {
		return m.PutErr
	}
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

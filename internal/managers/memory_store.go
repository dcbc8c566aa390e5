package managers

import (
	"context"
	"sync"
)

// MemoryStore is a KeyValueStore held in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (ms *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	value, ok := ms.values[key]
	return value, ok, nil
}

func (ms *MemoryStore) Set(_ context.Context, key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.values[key] = value
	return nil
}

func (ms *MemoryStore) Delete(_ context.Context, keys ...string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, key := range keys {
		delete(ms.values, key)
	}
	return nil
}

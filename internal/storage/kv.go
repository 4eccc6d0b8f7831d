package storage

import "sync"

// KeyValue is the flat key-value backend the preset store persists into.
// Implementations are durable across process restarts except MemoryStore,
// which backs tests and ephemeral runs.
type KeyValue interface {
	GetString(key string) (string, bool)
	SetString(key, value string) error
	GetInt(key string, fallback int) int
	SetInt(key string, value int) error
	Delete(key string) error
}

// MemoryStore is an in-process KeyValue implementation.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]any
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]any)}
}

func (store *MemoryStore) GetString(key string) (string, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key].(string)
	return value, ok
}

func (store *MemoryStore) SetString(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = value
	return nil
}

func (store *MemoryStore) GetInt(key string, fallback int) int {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key].(int)
	if !ok {
		return fallback
	}
	return value
}

func (store *MemoryStore) SetInt(key string, value int) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = value
	return nil
}

func (store *MemoryStore) Delete(key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.values, key)
	return nil
}

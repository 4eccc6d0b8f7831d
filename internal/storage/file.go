package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const stateFileName = "state.json"

// FileStore persists key-value state as a single flat JSON object. A missing
// or unparseable file reads as empty state; only writes surface errors.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store under the OS user config directory.
func NewFileStore(appName string) (*FileStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return &FileStore{path: filepath.Join(configDir, appName, stateFileName)}, nil
}

// NewFileStoreAt creates a store backed by an explicit file path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

func (store *FileStore) GetString(key string) (string, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.load()[key].(string)
	return value, ok
}

func (store *FileStore) SetString(key, value string) error {
	return store.set(key, value)
}

func (store *FileStore) GetInt(key string, fallback int) int {
	store.mu.Lock()
	defer store.mu.Unlock()
	// JSON numbers decode as float64.
	value, ok := store.load()[key].(float64)
	if !ok {
		return fallback
	}
	return int(value)
}

func (store *FileStore) SetInt(key string, value int) error {
	return store.set(key, value)
}

func (store *FileStore) Delete(key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	state := store.load()
	if _, ok := state[key]; !ok {
		return nil
	}
	delete(state, key)
	return store.save(state)
}

func (store *FileStore) set(key string, value any) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	state := store.load()
	state[key] = value
	return store.save(state)
}

func (store *FileStore) load() map[string]any {
	state := make(map[string]any)
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		// Absent and unreadable state both read as empty.
		return state
	}
	if err := json.Unmarshal(rawData, &state); err != nil {
		return make(map[string]any)
	}
	return state
}

func (store *FileStore) save(state map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	serialized, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state json: %w", err)
	}
	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store persists item counts to a JSON file. All methods are safe for
// concurrent use; every mutation is written through to disk.
type Store struct {
	path  string
	mu    sync.RWMutex
	items map[string]int
}

// storeData is the JSON structure for the inventory file.
type storeData struct {
	Version   int            `json:"version"`
	UpdatedAt string         `json:"updated_at"`
	Items     map[string]int `json:"items"`
}

const currentVersion = 1

// NewStore creates a store backed by the given path. An existing file is
// loaded; a missing file means an empty inventory until the first save.
func NewStore(path string) (*Store, error) {
	store := &Store{
		path:  path,
		items: make(map[string]int),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := store.load(); err != nil {
			return nil, fmt.Errorf("failed to load inventory: %w", err)
		}
	}

	return store, nil
}

// load reads the inventory from disk.
func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var stored storeData
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	if stored.Items == nil {
		stored.Items = make(map[string]int)
	}
	s.items = stored.Items
	return nil
}

// save writes the inventory to disk. Caller must hold the write lock.
func (s *Store) save() error {
	stored := storeData{
		Version:   currentVersion,
		UpdatedAt: time.Now().Format(time.RFC3339),
		Items:     s.items,
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	// Write to temp file first, then rename (atomic write)
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Items returns a copy of the current item counts.
func (s *Store) Items() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.items))
	for name, count := range s.items {
		out[name] = count
	}
	return out
}

// Get returns the count for an item and whether it is tracked.
func (s *Store) Get(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count, ok := s.items[name]
	return count, ok
}

// Set records a count for an item and persists the change.
func (s *Store) Set(name string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[name] = count
	return s.save()
}

// Replace swaps in a full item map and persists it.
func (s *Store) Replace(items map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]int, len(items))
	for name, count := range items {
		s.items[name] = count
	}
	return s.save()
}

// Count returns the number of tracked items.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Path returns the file path of the store.
func (s *Store) Path() string {
	return s.path
}

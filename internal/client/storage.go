package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys for the persisted session state. Both absent means logged out.
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
)

// Storage is the durable key-value store backing the client session state,
// the counterpart of the browser's localStorage.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// FileStorage persists entries as a JSON object in a single file.
type FileStorage struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// NewFileStorage opens (or creates) the storage file at the given path.
func NewFileStorage(path string) (*FileStorage, error) {
	s := &FileStorage{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read session storage: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.entries); err != nil {
			return nil, fmt.Errorf("decode session storage: %w", err)
		}
	}

	return s, nil
}

// Get returns the value stored under key.
func (s *FileStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok
}

// Set stores the value under key and flushes to disk.
func (s *FileStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return s.flush()
}

// Delete removes the entry under key and flushes to disk.
func (s *FileStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return s.flush()
}

func (s *FileStorage) flush() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session storage: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session storage dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session storage: %w", err)
	}

	return nil
}

// MemoryStorage is an in-memory Storage, used in tests.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok
}

func (s *MemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

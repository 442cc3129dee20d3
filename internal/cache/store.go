// Package cache provides key-value stores with per-entry expiry for resolved stream lists.
package cache

import (
	"sync"
	"time"

	"github.com/homestream-cli/homestream/filesystem"
	"github.com/metafates/gache"
)

// Store is a key-value store whose entries expire after a ttl.
type Store[T any] interface {
	// Get returns the value stored under key and whether it was present and unexpired.
	Get(key string) (T, bool, error)
	Set(key string, value T, ttl time.Duration) error
}

type entry[T any] struct {
	Value     T         `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e entry[T]) expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

type fileData[T any] struct {
	Entries map[string]entry[T] `json:"entries"`
}

// FileStore persists every entry in a single JSON file through gache.
type FileStore[T any] struct {
	internal *gache.Cache[*fileData[T]]
	mu       sync.RWMutex
	now      func() time.Time
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore[T any](path string) *FileStore[T] {
	return &FileStore[T]{
		internal: gache.New[*fileData[T]](
			&gache.Options{
				Path:       path,
				FileSystem: &filesystem.GacheFs{},
			},
		),
		now: time.Now,
	}
}

func (s *FileStore[T]) load() (*fileData[T], error) {
	data, expired, err := s.internal.Get()
	if err != nil {
		return nil, err
	}

	if expired || data == nil || data.Entries == nil {
		return &fileData[T]{Entries: make(map[string]entry[T])}, nil
	}

	return data, nil
}

// Get retrieves an unexpired entry.
func (s *FileStore[T]) Get(key string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T

	data, err := s.load()
	if err != nil {
		return zero, false, err
	}

	e, ok := data.Entries[key]
	if !ok || e.expired(s.now()) {
		return zero, false, nil
	}

	return e.Value, true, nil
}

// Set stores value under key until ttl elapses.
// An unreadable file is replaced.
func (s *FileStore[T]) Set(key string, value T, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		data = &fileData[T]{Entries: make(map[string]entry[T])}
	}

	data.Entries[key] = entry[T]{Value: value, ExpiresAt: s.now().Add(ttl)}
	return s.internal.Set(data)
}

// Delete removes the entry stored under key.
func (s *FileStore[T]) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := data.Entries[key]; !ok {
		return nil
	}

	delete(data.Entries, key)
	return s.internal.Set(data)
}

// Prune drops expired entries and reports how many were removed.
func (s *FileStore[T]) Prune() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return 0, err
	}

	now := s.now()
	var removed int
	for key, e := range data.Entries {
		if e.expired(now) {
			delete(data.Entries, key)
			removed++
		}
	}

	if removed == 0 {
		return 0, nil
	}

	return removed, s.internal.Set(data)
}

// MemoryStore keeps entries in process memory.
type MemoryStore[T any] struct {
	entries map[string]entry[T]
	mu      sync.RWMutex
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

func (s *MemoryStore[T]) Get(key string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || e.expired(s.now()) {
		var zero T
		return zero, false, nil
	}

	return e.Value, true, nil
}

func (s *MemoryStore[T]) Set(key string, value T, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry[T]{Value: value, ExpiresAt: s.now().Add(ttl)}
	return nil
}

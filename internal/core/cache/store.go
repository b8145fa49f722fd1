package cache

import (
	"context"
	"sync"
)

// Store holds computed categories. PutIfAbsent keeps the first value written
// for a key and returns whichever value is stored once it completes.
type Store interface {
	Get(ctx context.Context, key Key) (string, bool, error)
	PutIfAbsent(ctx context.Context, key Key, category string) (string, error)
}

// MemoryStore lives for the process lifetime. Entries never expire.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]string)}
}

func (s *MemoryStore) Get(_ context.Context, key Key) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.entries[key]
	return category, ok, nil
}

func (s *MemoryStore) PutIfAbsent(_ context.Context, key Key, category string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[key]; ok {
		return existing, nil
	}
	s.entries[key] = category
	return category, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

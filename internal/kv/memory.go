package kv

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and as the fallback when
// a persistent write fails with ErrQuotaExceeded.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string

	// FailWith, when non-nil, is returned from every Set. Tests use it to
	// simulate quota exhaustion.
	FailWith error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

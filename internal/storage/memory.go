package storage

import (
	"context"
	"sync"
)

type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: map[string]string{}}
}

func (s *MemoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok, nil
}

func (s *MemoryStorage) SetItem(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryStorage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *MemoryStorage) Close() error { return nil }

package mock

import (
	"context"
	"sync"
)

// Storage is an in-memory media store for tests.
type Storage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewStorage creates an empty in-memory media store.
func NewStorage() *Storage {
	return &Storage{objects: make(map[string][]byte)}
}

func (s *Storage) Upload(_ context.Context, key string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *Storage) URL(key string) string {
	if key == "" {
		return ""
	}
	return "https://media.test/" + key
}

// Has reports whether a key is stored.
func (s *Storage) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// Len reports the number of stored objects.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

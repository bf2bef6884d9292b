// Package memory is an in-process KV used by tests and as a stand-in when
// no Redis is available. Reads observe the latest write (read-your-writes).
package memory

import (
	"context"
	"sync"
	"time"
)

// Store holds typed values per key behind a single mutex.
type Store struct {
	mu      sync.RWMutex
	strings map[string]string
	arrays  map[string][]string
	ints    map[string]int
	times   map[string]time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		strings: make(map[string]string),
		arrays:  make(map[string][]string),
		ints:    make(map[string]int),
		times:   make(map[string]time.Time),
	}
}

func (s *Store) GetString(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strings[key], nil
}

func (s *Store) SetString(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strings[key] = value
	return nil
}

func (s *Store) GetStrings(_ context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vals, ok := s.arrays[key]
	if !ok {
		return nil, nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out, nil
}

func (s *Store) SetStrings(_ context.Context, key string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]string, len(values))
	copy(stored, values)
	s.arrays[key] = stored
	return nil
}

func (s *Store) GetInt(_ context.Context, key string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ints[key], nil
}

func (s *Store) SetInt(_ context.Context, key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints[key] = value
	return nil
}

func (s *Store) GetTime(_ context.Context, key string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.times[key], nil
}

func (s *Store) SetTime(_ context.Context, key string, value time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.times[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.strings, key)
		delete(s.arrays, key)
		delete(s.ints, key)
		delete(s.times, key)
	}
	return nil
}

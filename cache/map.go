package cache

import (
	"iter"
	"sync"
)

// MapStore is the default storage strategy: an unbounded mutex-guarded map
// with no eviction.
type MapStore struct {
	mu      sync.RWMutex
	records map[any]any
}

// NewMapStore creates an empty unbounded store.
func NewMapStore() *MapStore {
	return &MapStore{records: make(map[any]any)}
}

// Unbounded is the Factory for MapStore.
func Unbounded() Store {
	return NewMapStore()
}

func (s *MapStore) Get(key any) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[key]
	return r, ok
}

func (s *MapStore) Put(key, record any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = record
}

func (s *MapStore) Remove(key any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
}

// Scan snapshots the current records under the read lock, then yields them
// lazily. Writes performed while a caller iterates do not show up in an
// in-flight traversal.
func (s *MapStore) Scan() iter.Seq[any] {
	s.mu.RLock()
	snapshot := make([]any, 0, len(s.records))
	for _, r := range s.records {
		snapshot = append(snapshot, r)
	}
	s.mu.RUnlock()

	return func(yield func(any) bool) {
		for _, r := range snapshot {
			if !yield(r) {
				return
			}
		}
	}
}

func (s *MapStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[any]any)
}

func (s *MapStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

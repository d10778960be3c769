package cache

import (
	"fmt"
	"iter"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUStore is a bounded storage strategy: at most capacity records, evicting
// the least-recently-used record on overflow. Get and Put refresh recency.
type LRUStore struct {
	backing *lru.Cache[any, any]
}

// NewLRUStore creates an empty bounded store. Capacity must be positive.
func NewLRUStore(capacity int) *LRUStore {
	backing, err := lru.New[any, any](capacity)
	if err != nil {
		panic(fmt.Errorf("invalid LRU store capacity %d: %w", capacity, err))
	}
	return &LRUStore{backing: backing}
}

// LRU returns a Factory producing bounded stores of the given capacity.
func LRU(capacity int) Factory {
	return func() Store {
		return NewLRUStore(capacity)
	}
}

func (s *LRUStore) Get(key any) (any, bool) {
	return s.backing.Get(key)
}

func (s *LRUStore) Put(key, record any) {
	s.backing.Add(key, record)
}

func (s *LRUStore) Remove(key any) {
	s.backing.Remove(key)
}

// Scan traverses a snapshot of the current keys from oldest to newest,
// peeking records without refreshing their recency.
func (s *LRUStore) Scan() iter.Seq[any] {
	keys := s.backing.Keys()

	return func(yield func(any) bool) {
		for _, k := range keys {
			r, ok := s.backing.Peek(k)
			if !ok {
				// evicted between snapshot and traversal
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

func (s *LRUStore) Clear() {
	s.backing.Purge()
}

func (s *LRUStore) Len() int {
	return s.backing.Len()
}

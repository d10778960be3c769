package cache

import (
	"iter"
	"sync"
)

// Cache is the entity store: a registry of storage strategies keyed by
// descriptor. Partitions materialize lazily on first access; once a
// partition exists, re-registering its descriptor has no effect on it.
//
// Put and Remove are the only mutation entry points and are safe to call
// concurrently with any in-flight read.
type Cache struct {
	mu        sync.Mutex
	def       Factory
	factories map[Descriptor]Factory
	stores    map[Descriptor]Store
}

// New creates a Cache backed by unbounded map stores for every descriptor.
func New() *Cache {
	return NewBuilder().Build()
}

// Register binds a strategy factory to a descriptor, replacing any previous
// binding. It affects only partitions that have not materialized yet.
func (c *Cache) Register(d Descriptor, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[d] = f
}

// Unregister removes a descriptor's strategy binding, reverting future
// materialization to the default strategy.
func (c *Cache) Unregister(d Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.factories, d)
}

// store returns the descriptor's partition, materializing it on first use.
func (c *Cache) store(d Descriptor) Store {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.stores[d]; ok {
		return s
	}
	f, ok := c.factories[d]
	if !ok {
		f = c.def
	}
	s := f()
	c.stores[d] = s
	return s
}

// Get returns the record stored under key in the descriptor's partition.
func (c *Cache) Get(d Descriptor, key any) (any, bool) {
	return c.store(d).Get(key)
}

// Put stores a record under key in the descriptor's partition.
func (c *Cache) Put(d Descriptor, key, record any) {
	c.store(d).Put(key, record)
}

// Remove deletes the record under key from the descriptor's partition.
func (c *Cache) Remove(d Descriptor, key any) {
	c.store(d).Remove(key)
}

// Len reports the number of records in the descriptor's partition.
func (c *Cache) Len(d Descriptor) int {
	return c.store(d).Len()
}

// ClearAll empties every materialized partition.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	stores := make([]Store, 0, len(c.stores))
	for _, s := range c.stores {
		stores = append(stores, s)
	}
	c.mu.Unlock()
	for _, s := range stores {
		s.Clear()
	}
}

// Find scans the descriptor's partition and lazily yields every record of
// type T matching pred. A nil pred matches everything. Records of a
// different dynamic type are skipped. The scan is a fresh traversal per
// call; the cost is linear in the partition size.
func Find[T any](c *Cache, d Descriptor, pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for r := range c.store(d).Scan() {
			v, ok := r.(T)
			if !ok {
				continue
			}
			if pred != nil && !pred(v) {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// First returns the first record of type T matching pred, scanning the
// descriptor's partition.
func First[T any](c *Cache, d Descriptor, pred func(T) bool) (T, bool) {
	for v := range Find(c, d, pred) {
		return v, true
	}
	var zero T
	return zero, false
}

// Package cache implements the client's in-memory entity store: one pluggable
// storage strategy per record kind, queried by predicate scans and mutated by
// the gateway dispatch path.
package cache

import "iter"

// Store is the storage strategy contract for one descriptor's partition.
// Implementations must be safe for concurrent use without external locking;
// per-key operations are atomic, cross-key snapshot consistency is not
// guaranteed.
type Store interface {
	// Get returns the record stored under key, if any.
	Get(key any) (any, bool)
	// Put stores record under key, overwriting any previous record.
	Put(key, record any)
	// Remove deletes the record stored under key, if any.
	Remove(key any)
	// Scan returns a fresh, finite traversal of the records present at call
	// time. Each call restarts from scratch; abandoning the sequence early
	// has no side effects.
	Scan() iter.Seq[any]
	// Clear removes every record.
	Clear()
	// Len reports the number of stored records.
	Len() int
}

// Factory produces a Store. A factory is invoked at most once per descriptor
// per Cache, on first access to that descriptor's partition.
type Factory func() Store

// Descriptor identifies one record kind's cache partition. Each descriptor
// maps to at most one Store within a Cache.
type Descriptor string

const (
	Guilds   Descriptor = "guilds"
	Channels Descriptor = "channels"
	Users    Descriptor = "users"
	Members  Descriptor = "members"
	Messages Descriptor = "messages"
	Roles    Descriptor = "roles"
	Bans     Descriptor = "bans"
	Emojis   Descriptor = "emojis"
	Webhooks Descriptor = "webhooks"
	Regions  Descriptor = "regions"
)

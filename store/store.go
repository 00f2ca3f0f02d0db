package store

import (
	"sync"
	"sync/atomic"

	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

/*
This file defines how cache entries are actually stored. This is NOT a normal map.
- Reads happen on every FetchAll for every key and should be very fast
- Reads should NOT require locks
- Writes happen only when a fetch settles or an entry is invalidated

To achieve this, we use a technique called "Copy-On-Write" (COW):
- Readers always see an immutable snapshot
- Writers create a NEW copy of the map under a mutex
- The new map replaces the old one atomically

The dashboard tracks a handful of keys, so copying the whole map on a write
costs almost nothing, while every read stays lock-free.
*/

// EntryStore is a copy-on-write keyed store of cache entries.
type EntryStore struct {

	// data holds the current map[string]*CacheEntry snapshot.
	// atomic.Value lets readers access it safely without locks.
	data atomic.Value

	// mu serializes writers. Readers never take it.
	mu sync.Mutex
}

// New creates an empty entry store.
func New() *EntryStore {
	s := &EntryStore{}
	s.data.Store(make(map[string]*types.CacheEntry))
	return s
}

// Get retrieves an entry by key.
func (s *EntryStore) Get(key string) (*types.CacheEntry, bool) {
	m := s.snapshot()
	ent, ok := m[key]
	return ent, ok
}

/*
Put inserts or replaces an entry. This is where copy-on-write happens.

1. Take the writer lock
2. Copy the current map into a new one
3. Add / replace the entry
4. Atomically swap the map
*/
func (s *EntryStore) Put(key string, ent *types.CacheEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.snapshot()
	n := make(map[string]*types.CacheEntry, len(old)+1)
	for k, v := range old {
		n[k] = v
	}
	n[key] = ent
	s.data.Store(n)
}

// Delete removes an entry. Deleting a missing key is a no-op,
// so manual invalidation is always safe to call.
func (s *EntryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.snapshot()
	if _, ok := old[key]; !ok {
		return
	}
	n := make(map[string]*types.CacheEntry, len(old))
	for k, v := range old {
		if k != key {
			n[k] = v
		}
	}
	s.data.Store(n)
}

// Clear removes every entry at once. Used by full invalidation.
func (s *EntryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Store(make(map[string]*types.CacheEntry))
}

// Len returns how many entries are stored.
func (s *EntryStore) Len() int {
	return len(s.snapshot())
}

/*
Entries returns the current set of entries as a read-only snapshot.
The sweep iterates this to find expired entries without holding any lock
while it decides what to delete.
*/
func (s *EntryStore) Entries() map[string]*types.CacheEntry {
	return s.snapshot()
}

func (s *EntryStore) snapshot() map[string]*types.CacheEntry {
	return s.data.Load().(map[string]*types.CacheEntry)
}

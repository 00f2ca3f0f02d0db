package types

import "time"

// CacheEntry is one cached dashboard payload.
// It is created on a successful fetch and replaced wholesale on refresh,
// so an entry is never mutated after it is stored.
type CacheEntry struct {
	Key      string
	Value    any
	StoredAt time.Time
	ExpireAt time.Time // zero => no TTL
}

// Expired reports whether the entry is past its TTL at the given moment.
// Entries without a TTL never expire.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !e.ExpireAt.IsZero() && now.After(e.ExpireAt)
}

package expiration

import (
	"time"

	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

/*
ExpireAfterWrite implements fixed TTLs counted from the moment an entry is
stored. Reads do NOT push the timer forward: dashboard data goes stale on the
backend at its own pace, regardless of how often a widget looks at it. Once
the per-key TTL has elapsed, the entry must be refetched.

Each key carries its own TTL. The roster can live for half an hour while news
statistics are only trusted for a few minutes.
*/
type ExpireAfterWrite struct {

	// TTLs maps a cache key to its time-to-live.
	TTLs map[string]time.Duration

	// Default is used for keys missing from TTLs.
	// Zero means such entries never expire.
	Default time.Duration
}

// NewExpireAfterWrite builds the strategy from a per-key TTL table.
func NewExpireAfterWrite(ttls map[string]time.Duration, def time.Duration) *ExpireAfterWrite {
	return &ExpireAfterWrite{TTLs: ttls, Default: def}
}

// TTL returns the time-to-live configured for a key.
func (e *ExpireAfterWrite) TTL(key string) time.Duration {
	if ttl, ok := e.TTLs[key]; ok {
		return ttl
	}
	return e.Default
}

// IsExpired checks whether the entry is expired at this moment.
func (e *ExpireAfterWrite) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return ent.Expired(now)
}

/*
OnWrite is called when the entry is written or replaced.

1. Record when the entry was stored
2. Set ExpireAt to StoredAt + the key's TTL

A zero TTL leaves ExpireAt zero, meaning the entry never expires on its own.
*/
func (e *ExpireAfterWrite) OnWrite(ent *types.CacheEntry, now time.Time) {
	ent.StoredAt = now
	if ttl := e.TTL(ent.Key); ttl > 0 {
		ent.ExpireAt = now.Add(ttl)
	}
}

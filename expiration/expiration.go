// This file defines how cache entries expire over time.

package expiration

import (
	"time"

	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

/*
Strategy is the interface that all expiration rules must follow. Instead of
hard-coding expiration logic into the coordinator, we define a strategy so
expiration behavior can be swapped easily.
*/
type Strategy interface {

	// IsExpired checks if the entry is expired at the given moment.
	IsExpired(*types.CacheEntry, time.Time) bool

	// OnWrite is called whenever a cache entry is written or replaced.
	// This is where the strategy stamps the entry's expiration time.
	OnWrite(*types.CacheEntry, time.Time)
}

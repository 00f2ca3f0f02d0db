package api

import (
	"context"

	coordinator "github.com/justbuildpd-sudo/newsbot-sub000"
	"github.com/justbuildpd-sudo/newsbot-sub000/dashboard"
)

var _ Coordinator = (*coordinator.Coordinator)(nil)

/*
Coordinator defines the PUBLIC API of the dashboard data layer.
This is a contract that guarantees certain behaviors, without exposing
internals. All of the details (entry storage, TTL bookkeeping, parallel
fetching, response deduplication, eviction sweeping) are hidden behind
this interface.
*/
type Coordinator interface {

	/*
		FetchAll brings every dashboard key up to date.

		BEHAVIOR:
		---------
		1. If a key has a valid (non-expired) cache entry:
		   - Its value is served immediately, with NO network request

		2. If a key's entry is missing or expired:
		   - Its HTTP fetch is queued

		3. All queued fetches run IN PARALLEL and are joined settle-all
		   style: each outcome is observed on its own, so some keys may
		   succeed while others fail in the same call.

		FetchAll blocks until every queued fetch has settled. Results are
		read through Data, Loading, Errors, and Status.
	*/
	FetchAll(ctx context.Context)

	/*
		Refresh forces a re-fetch of one key.

		BEHAVIOR:
		---------
		- Deletes the key's cache entry (even if still valid)
		- Marks the key loading and clears its error
		- Re-fetches ONLY that key; others stay served from their caches

		The invalidation happens synchronously before the new request is
		dispatched, so a late response from before the refresh can never
		overwrite the fresh one.

		Refreshing is how callers retry after an error; the coordinator
		never retries on its own.
	*/
	Refresh(ctx context.Context, key dashboard.Key) error

	/*
		RefreshAll clears EVERY cache entry and re-fetches every key,
		regardless of individual TTLs.
	*/
	RefreshAll(ctx context.Context)

	/*
		Data returns the current value of every key.

		- Never-fetched keys hold their empty default payload
		- Failed keys hold their last known value (stale display data
		  persists until a fetch replaces it)

		The returned map is a read-only snapshot; callers must not mutate
		the contained values.
	*/
	Data() map[dashboard.Key]any

	// Loading returns the per-key loading flags: true from request
	// issuance until that key's fetch settles, independent of the others.
	Loading() map[dashboard.Key]bool

	// Errors returns the keys currently carrying an error, with their
	// human-readable messages. A key with an error is never also loading.
	Errors() map[dashboard.Key]string

	// Status reports where one key sits in its lifecycle:
	// empty → loading → cached | error.
	Status(key dashboard.Key) coordinator.KeyStatus

	// IsLoading reports whether ANY key is still loading.
	IsLoading() bool

	// HasErrors reports whether ANY key carries an error.
	HasErrors() bool

	/*
		Close gracefully shuts down the coordinator.

		BEHAVIOR:
		---------
		- Stops the background eviction sweep
		- Safe to call more than once

		WHEN TO CALL:
		-------------
		- Application shutdown
		- Tests cleanup
	*/
	Close()
}

package coordinator

import "github.com/justbuildpd-sudo/newsbot-sub000/dashboard"

/*
This file defines the per-key state the coordinator tracks alongside the
cache itself. The cache answers "do we have a valid payload"; this state
answers "what should a consumer render right now".

Each key moves through a small machine:

	Empty → Loading → Cached | Error

From Cached, an expired TTL sends the next FetchAll back to Loading.
From Error, Refresh or RefreshAll sends the key back to Loading.
There is no separate "success without data" terminal state: an empty but
successful payload is still Cached.
*/

// KeyStatus is where one key currently sits in its lifecycle.
type KeyStatus int

const (
	// StatusEmpty means the key has never been fetched; consumers see its
	// empty default payload.
	StatusEmpty KeyStatus = iota

	// StatusLoading means a fetch for the key is in flight.
	StatusLoading

	// StatusCached means the key's last fetch succeeded and its value is
	// being served (possibly stale, if the TTL has since elapsed).
	StatusCached

	// StatusError means the key's last fetch failed; the previous value,
	// if any, is still displayed.
	StatusError
)

func (s KeyStatus) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusLoading:
		return "loading"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	}
	return "unknown"
}

/*
keyState is the mutable record behind one key. All access goes through the
coordinator's mutex.

generation guards against out-of-order response application: every dispatched
fetch carries the generation it was issued under, and a settled response is
dropped if a Refresh has bumped the generation in the meantime. A slow stale
request can therefore never overwrite a freshly started refresh.
*/
type keyState struct {
	value      any
	loading    bool
	err        string // "" => no error
	status     KeyStatus
	generation uint64
}

// Snapshot is a read-only copy of the coordinator's full per-key state,
// taken at one instant. Consumers must not mutate the contained values.
type Snapshot struct {
	Data    map[dashboard.Key]any
	Loading map[dashboard.Key]bool
	Errors  map[dashboard.Key]string
	Status  map[dashboard.Key]KeyStatus
}

// IsLoading reports whether any key is still loading.
func (s Snapshot) IsLoading() bool {
	for _, l := range s.Loading {
		if l {
			return true
		}
	}
	return false
}

// HasErrors reports whether any key carries an error.
func (s Snapshot) HasErrors() bool {
	return len(s.Errors) > 0
}

package types

// This file defines how the coordinator reports what it is doing.

import "sync/atomic"

/*
Metrics is an interface that defines what the coordinator wants to measure.
Each method represents an event in the fetch-cache lifecycle. The coordinator
will call these methods whenever something happens.
*/
type Metrics interface {

	// Hit is called when a key is served from a still-valid cache entry,
	// without a network request.
	Hit()

	// Miss is called when a key has no valid cache entry and a network
	// fetch has to be issued.
	Miss()

	// Expire is called when the sweep removes an entry that passed its TTL.
	Expire()

	// FetchError is called when a key's fetch settles with a failure
	// (network, HTTP status, application flag, or decode).
	FetchError()

	// Refresh is called when a caller forces re-fetching through
	// Refresh or RefreshAll.
	Refresh()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

We don't want to force every user of the coordinator to implement metrics.
If someone does not care about metrics, the coordinator should still work
without nil checks everywhere. So we provide a default implementation that
simply ignores all metric events.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()        {}
func (NoopMetrics) Miss()       {}
func (NoopMetrics) Expire()     {}
func (NoopMetrics) FetchError() {}
func (NoopMetrics) Refresh()    {}

/*
CounterMetrics is a minimal Metrics implementation backed by atomic counters.
The watch command uses it to print a running tally; it is also handy in tests
for asserting how many network fetches actually happened.
*/
type CounterMetrics struct {
	Hits        atomic.Int64
	Misses      atomic.Int64
	Expires     atomic.Int64
	FetchErrors atomic.Int64
	Refreshes   atomic.Int64
}

func (m *CounterMetrics) Hit()        { m.Hits.Add(1) }
func (m *CounterMetrics) Miss()       { m.Misses.Add(1) }
func (m *CounterMetrics) Expire()     { m.Expires.Add(1) }
func (m *CounterMetrics) FetchError() { m.FetchErrors.Add(1) }
func (m *CounterMetrics) Refresh()    { m.Refreshes.Add(1) }

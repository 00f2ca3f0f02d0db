package types

import "context"

// Fetcher is the contract between the coordinator and the remote backend.
type Fetcher interface {

	/*
		Fetch is called when the cache misses. The key was not found in memory
		(or its entry expired), so the coordinator asks the Fetcher for fresh data.

		1. Coordinator checks memory → key missing or expired
		2. Coordinator calls Fetch(key)
		3. Fetcher issues the HTTP request for that key's endpoint
		4. Coordinator stores the result in memory
		5. Coordinator exposes the value through its data snapshot

		The dashboard never writes data back to the backend, so this is a
		read-only contract: there is no Put.

		Fetch must honor ctx cancellation; the coordinator applies a per-request
		deadline before calling it.
	*/
	Fetch(ctx context.Context, key string) (any, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
// Tests use this to fake the backend without an HTTP server.
type FetcherFunc func(ctx context.Context, key string) (any, error)

func (f FetcherFunc) Fetch(ctx context.Context, key string) (any, error) {
	return f(ctx, key)
}

package coordinator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justbuildpd-sudo/newsbot-sub000/dashboard"
	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

// A response dispatched before a refresh must not overwrite the state the
// refresh owns: its generation is stale by the time it settles.
func TestStaleFetchResultIsDropped(t *testing.T) {
	fetcher := types.FetcherFunc(func(ctx context.Context, key string) (any, error) {
		return "late-old-payload", nil
	})

	c := New(fetcher, WithSweepInterval(0))
	defer c.Close()

	key := dashboard.KeyNews

	c.mu.Lock()
	st := c.states[key]
	st.generation = 7 // a refresh has since restarted this key
	st.value = "fresh-payload"
	st.status = StatusCached
	c.mu.Unlock()

	// The slow request from generation 6 finally settles.
	c.fetchOne(context.Background(), fetchJob{key: key, gen: 6})

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Equal(t, "fresh-payload", st.value, "stale result must not apply")
	assert.Equal(t, StatusCached, st.status)

	_, ok := c.store.Get(string(key))
	assert.False(t, ok, "stale result must not create a cache entry")
}

func TestCurrentGenerationResultApplies(t *testing.T) {
	fetcher := types.FetcherFunc(func(ctx context.Context, key string) (any, error) {
		return "current-payload", nil
	})

	c := New(fetcher, WithSweepInterval(0))
	defer c.Close()

	key := dashboard.KeyNews

	c.mu.Lock()
	st := c.states[key]
	st.generation = 3
	st.loading = true
	st.status = StatusLoading
	c.mu.Unlock()

	c.fetchOne(context.Background(), fetchJob{key: key, gen: 3})

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Equal(t, "current-payload", st.value)
	assert.False(t, st.loading)
	assert.Equal(t, StatusCached, st.status)

	ent, ok := c.store.Get(string(key))
	require.True(t, ok)
	assert.Equal(t, "current-payload", ent.Value)
}

// A stale failure is dropped the same way a stale success is.
func TestStaleFailureIsDropped(t *testing.T) {
	fetcher := types.FetcherFunc(func(ctx context.Context, key string) (any, error) {
		return nil, errors.New("old request timed out")
	})

	c := New(fetcher, WithSweepInterval(0))
	defer c.Close()

	key := dashboard.KeyTrends

	c.mu.Lock()
	st := c.states[key]
	st.generation = 2
	st.status = StatusCached
	st.value = "fresh-payload"
	c.mu.Unlock()

	c.fetchOne(context.Background(), fetchJob{key: key, gen: 1})

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Empty(t, st.err, "stale failure must not surface an error")
	assert.Equal(t, StatusCached, st.status)
}

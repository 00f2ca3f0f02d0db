package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/justbuildpd-sudo/newsbot-sub000/dashboard"
	"github.com/justbuildpd-sudo/newsbot-sub000/expiration"
	"github.com/justbuildpd-sudo/newsbot-sub000/store"
	"github.com/justbuildpd-sudo/newsbot-sub000/sweep"
	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

/*
Coordinator is the fetch-cache coordinator of the dashboard data layer.
This struct is the orchestrator that connects:
- the entry store (what we have)
- the expiration strategy (how long we trust it)
- the fetcher (how we get more)
- the sweeper (who cleans up)
- metrics and logging

Consumers see one unified data snapshot covering every dashboard key, with
independent loading and error status per key. Network requests are only
issued for keys whose cache entry is missing or expired, and all pending
requests of one FetchAll run in parallel as a settle-all batch: one key's
failure never blocks or cancels the others.
*/
type Coordinator struct {
	keys     []dashboard.Key
	store    *store.EntryStore
	strategy *expiration.ExpireAfterWrite
	fetcher  types.Fetcher
	sweeper  *sweep.Sweeper

	metrics types.Metrics
	logger  *zap.Logger

	// now is the clock. Tests inject a fake one to drive TTLs.
	now func() time.Time

	// sf collapses concurrent fetches of the same key into one request.
	sf singleflight.Group

	// mu guards states. The store has its own synchronization.
	mu     sync.Mutex
	states map[dashboard.Key]*keyState
}

// fetchJob is one queued network fetch: the key plus the generation it was
// dispatched under, so its result can be discarded if a refresh supersedes it.
type fetchJob struct {
	key dashboard.Key
	gen uint64
}

// New creates a coordinator around the given fetcher and starts its
// eviction sweep. Call Close when done with it.
func New(fetcher types.Fetcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		keys:    dashboard.Keys(),
		store:   store.New(),
		fetcher: fetcher,
		metrics: types.NoopMetrics{},
		logger:  zap.NewNop(),
		now:     time.Now,
		states:  make(map[dashboard.Key]*keyState),
	}

	settings := defaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}
	c.applySettings(settings)

	// Every key starts in the Empty state with its empty default payload,
	// so consumers can render placeholders before the first fetch.
	for _, k := range c.keys {
		c.states[k] = &keyState{
			value:  k.EmptyValue(),
			status: StatusEmpty,
		}
	}

	c.sweeper = sweep.New(c.store, c.strategy, settings.sweepInterval, c.now, c.metrics, c.logger)
	c.sweeper.Start()
	return c
}

/*
FetchAll brings every key up to date.

For each key:
  - a valid (non-expired) cache entry serves the key immediately, with no
    network request
  - otherwise the key's fetch is queued

All queued fetches are then issued in parallel and joined settle-all style:
every outcome is observed individually, successes and failures side by side.
FetchAll returns once every queued fetch has settled; results are read
through Data, Errors, and the other snapshot accessors.
*/
func (c *Coordinator) FetchAll(ctx context.Context) {
	now := c.now()
	var pending []fetchJob

	c.mu.Lock()
	for _, k := range c.keys {
		st := c.states[k]

		if ent, ok := c.store.Get(string(k)); ok && !c.strategy.IsExpired(ent, now) {
			// Cache hit: serve the stored value without a network call.
			st.value = ent.Value
			st.loading = false
			st.status = StatusCached
			c.metrics.Hit()
			continue
		}

		// Missing or expired: queue a fetch under a fresh generation.
		// A key with an error is never also loading, so the error clears
		// the moment its fetch restarts.
		st.generation++
		st.loading = true
		st.err = ""
		st.status = StatusLoading
		c.metrics.Miss()
		pending = append(pending, fetchJob{key: k, gen: st.generation})
	}
	c.mu.Unlock()

	if len(pending) == 0 {
		return
	}

	// Settle-all join: every task returns nil, so one key's failure cannot
	// cancel the batch. Outcomes land in per-key state inside fetchOne.
	var g errgroup.Group
	for _, job := range pending {
		job := job
		g.Go(func() error {
			c.fetchOne(ctx, job)
			return nil
		})
	}
	_ = g.Wait()
}

/*
fetchOne runs a single key's fetch and applies its outcome.

singleflight collapses overlapping fetches of the same key (two widgets
triggering FetchAll at once) into one backend request. The generation check
afterwards drops responses that a Refresh has made stale.
*/
func (c *Coordinator) fetchOne(ctx context.Context, job fetchJob) {
	value, err, _ := c.sf.Do(string(job.key), func() (any, error) {
		return c.fetcher.Fetch(ctx, string(job.key))
	})
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.states[job.key]
	if job.gen != st.generation {
		// A refresh restarted this key after we dispatched; the newer
		// request owns the state now.
		c.logger.Debug("dropped stale fetch result",
			zap.String("key", string(job.key)),
			zap.Uint64("generation", job.gen),
		)
		return
	}

	st.loading = false

	if err != nil {
		// The key keeps its previous value (stale or default); only the
		// error surface changes. Other keys are unaffected.
		st.err = err.Error()
		st.status = StatusError
		c.metrics.FetchError()
		c.logger.Warn("fetch failed",
			zap.String("key", string(job.key)),
			zap.String("error", st.err),
		)
		return
	}

	st.value = value
	st.err = ""
	st.status = StatusCached

	ent := &types.CacheEntry{Key: string(job.key), Value: value}
	c.strategy.OnWrite(ent, now)
	c.store.Put(string(job.key), ent)

	c.logger.Debug("fetch succeeded", zap.String("key", string(job.key)))
}

/*
Refresh forces a re-fetch of one key, even if its cache entry is still valid.

The invalidation is synchronous: the entry is deleted and the generation
bumped before any new request is dispatched, so a concurrent FetchAll can
neither read the stale entry nor apply a late response from before the
refresh. Other keys keep being served from their own caches.
*/
func (c *Coordinator) Refresh(ctx context.Context, key dashboard.Key) error {
	if !key.Valid() {
		return fmt.Errorf("refresh: unknown dashboard key %q", key)
	}

	c.mu.Lock()
	st := c.states[key]
	st.generation++
	st.loading = true
	st.err = ""
	st.status = StatusLoading
	c.store.Delete(string(key))
	c.mu.Unlock()

	c.metrics.Refresh()
	c.logger.Info("manual refresh", zap.String("key", string(key)))

	c.FetchAll(ctx)
	return nil
}

// RefreshAll invalidates every cache entry and re-fetches every key,
// regardless of individual TTLs.
func (c *Coordinator) RefreshAll(ctx context.Context) {
	c.mu.Lock()
	for _, k := range c.keys {
		st := c.states[k]
		st.generation++
		st.loading = true
		st.err = ""
		st.status = StatusLoading
	}
	c.store.Clear()
	c.mu.Unlock()

	c.metrics.Refresh()
	c.logger.Info("full refresh")

	c.FetchAll(ctx)
}

// Data returns the current value of every key. Failed or never-fetched keys
// hold their last known or empty default payload.
func (c *Coordinator) Data() map[dashboard.Key]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[dashboard.Key]any, len(c.keys))
	for _, k := range c.keys {
		out[k] = c.states[k].value
	}
	return out
}

// Loading returns the per-key loading flags.
func (c *Coordinator) Loading() map[dashboard.Key]bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[dashboard.Key]bool, len(c.keys))
	for _, k := range c.keys {
		out[k] = c.states[k].loading
	}
	return out
}

// Errors returns the keys that currently carry an error, with their
// human-readable messages. Healthy keys are absent.
func (c *Coordinator) Errors() map[dashboard.Key]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[dashboard.Key]string)
	for _, k := range c.keys {
		if msg := c.states[k].err; msg != "" {
			out[k] = msg
		}
	}
	return out
}

// Status returns where one key sits in its lifecycle.
func (c *Coordinator) Status(key dashboard.Key) KeyStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.states[key]
	if !ok {
		return StatusEmpty
	}
	return st.status
}

// IsLoading reports whether any key is still loading.
func (c *Coordinator) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range c.keys {
		if c.states[k].loading {
			return true
		}
	}
	return false
}

// HasErrors reports whether any key carries an error.
func (c *Coordinator) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range c.keys {
		if c.states[k].err != "" {
			return true
		}
	}
	return false
}

// Snapshot returns all per-key state in one consistent copy.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Data:    make(map[dashboard.Key]any, len(c.keys)),
		Loading: make(map[dashboard.Key]bool, len(c.keys)),
		Errors:  make(map[dashboard.Key]string),
		Status:  make(map[dashboard.Key]KeyStatus, len(c.keys)),
	}
	for _, k := range c.keys {
		st := c.states[k]
		snap.Data[k] = st.value
		snap.Loading[k] = st.loading
		snap.Status[k] = st.status
		if st.err != "" {
			snap.Errors[k] = st.err
		}
	}
	return snap
}

// Sweep runs one eviction pass immediately, outside the periodic schedule.
// It returns how many expired entries were removed.
func (c *Coordinator) Sweep() int {
	return c.sweeper.Sweep()
}

// CacheLen returns how many entries the cache currently holds.
func (c *Coordinator) CacheLen() int {
	return c.store.Len()
}

/*
Close gracefully shuts down the coordinator.
It stops the eviction sweep goroutine; without this, the sweeper would
outlive the coordinator. Close is safe to call more than once.
*/
func (c *Coordinator) Close() {
	c.sweeper.Close()
}

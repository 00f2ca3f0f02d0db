// This file implements the passive eviction sweep.
// On a fixed interval it scans the entry store and deletes entries whose TTL
// has elapsed, so an expired entry can never satisfy a future cache check.
// The sweep never touches displayed data: a widget keeps showing the last
// known value until an explicit fetch replaces it.

package sweep

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/justbuildpd-sudo/newsbot-sub000/expiration"
	"github.com/justbuildpd-sudo/newsbot-sub000/store"
	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

/*
Sweeper owns the background eviction goroutine.

It is an explicit, cancelable task tied to the coordinator's lifecycle:
started on construction, stopped by Close. A free-floating timer would leak
the goroutine when the coordinator is torn down.
*/
type Sweeper struct {

	// store is the entry store being swept.
	store *store.EntryStore

	// strategy decides whether a given entry is expired.
	strategy expiration.Strategy

	// interval is how often the sweep runs.
	interval time.Duration

	// now is the clock. Tests inject a fake one.
	now func() time.Time

	metrics types.Metrics
	logger  *zap.Logger

	// stop tells the worker to exit; wg waits for it during Close.
	stop chan struct{}
	wg   sync.WaitGroup

	// closeOnce makes Close idempotent.
	closeOnce sync.Once
}

// New creates a sweeper. It does not start sweeping until Start is called.
func New(
	st *store.EntryStore,
	strategy expiration.Strategy,
	interval time.Duration,
	now func() time.Time,
	metrics types.Metrics,
	logger *zap.Logger,
) *Sweeper {
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Sweeper{
		store:    st,
		strategy: strategy,
		interval: interval,
		now:      now,
		metrics:  metrics,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start launches the background worker. Calling Start on a sweeper with a
// non-positive interval is a no-op; Sweep can still be driven manually.
func (s *Sweeper) Start() {
	if s.interval <= 0 {
		return
	}
	s.wg.Add(1)
	go s.worker()
}

/*
worker runs in the background and triggers a sweep on every tick.
It exits when Close is called.
*/
func (s *Sweeper) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stop:
			return
		}
	}
}

/*
Sweep scans every stored entry once and deletes the expired ones.

The scan walks a lock-free snapshot; deletes go through the store's normal
write path. An entry that expires between snapshot and delete is still gone
afterwards, which is the outcome we wanted anyway.
*/
func (s *Sweeper) Sweep() int {
	now := s.now()
	removed := 0

	for key, ent := range s.store.Entries() {
		if !s.strategy.IsExpired(ent, now) {
			continue
		}
		s.store.Delete(key)
		s.metrics.Expire()
		removed++
		s.logger.Debug("evicted expired cache entry",
			zap.String("key", key),
			zap.Time("stored_at", ent.StoredAt),
		)
	}

	if removed > 0 {
		s.logger.Info("eviction sweep completed", zap.Int("removed", removed))
	}
	return removed
}

/*
Close shuts the sweeper down gracefully.

1. Signal the worker to stop
2. Wait for it to exit

Without this, the worker goroutine would outlive the coordinator.
Close is safe to call more than once.
*/
func (s *Sweeper) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
}

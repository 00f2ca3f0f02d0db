package sweep_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/justbuildpd-sudo/newsbot-sub000/expiration"
	"github.com/justbuildpd-sudo/newsbot-sub000/store"
	"github.com/justbuildpd-sudo/newsbot-sub000/sweep"
	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type sweepFixture struct {
	store    *store.EntryStore
	clock    *manualClock
	metrics  *types.CounterMetrics
	strategy *expiration.ExpireAfterWrite
	sweeper  *sweep.Sweeper
}

func newSweepFixture(interval time.Duration) *sweepFixture {
	f := &sweepFixture{
		store:   store.New(),
		clock:   &manualClock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
		metrics: &types.CounterMetrics{},
		strategy: expiration.NewExpireAfterWrite(map[string]time.Duration{
			"news":        5 * time.Minute,
			"politicians": 30 * time.Minute,
		}, 0),
	}
	f.sweeper = sweep.New(f.store, f.strategy, interval, f.clock.Now, f.metrics, nil)
	return f
}

func (f *sweepFixture) put(key string) {
	ent := &types.CacheEntry{Key: key, Value: key + "-payload"}
	f.strategy.OnWrite(ent, f.clock.Now())
	f.store.Put(key, ent)
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	f := newSweepFixture(0)

	f.put("news")
	f.put("politicians")

	// 6 minutes in: news (5m) is stale, politicians (30m) is not.
	f.clock.Advance(6 * time.Minute)
	removed := f.sweeper.Sweep()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, f.store.Len())
	_, ok := f.store.Get("politicians")
	assert.True(t, ok)
	assert.Equal(t, int64(1), f.metrics.Expires.Load())
}

func TestSweepOnFreshStoreRemovesNothing(t *testing.T) {
	f := newSweepFixture(0)

	f.put("news")
	assert.Equal(t, 0, f.sweeper.Sweep())
	assert.Equal(t, 1, f.store.Len())
}

func TestBackgroundWorkerSweeps(t *testing.T) {
	f := newSweepFixture(5 * time.Millisecond)

	f.put("news")
	f.clock.Advance(10 * time.Minute)

	f.sweeper.Start()
	defer f.sweeper.Close()

	assert.Eventually(t, func() bool { return f.store.Len() == 0 },
		time.Second, time.Millisecond)
}

func TestCloseStopsWorker(t *testing.T) {
	f := newSweepFixture(time.Millisecond)
	f.sweeper.Start()
	f.sweeper.Close()
	f.sweeper.Close() // idempotent
}

// A non-positive interval means no background worker at all; Close must
// still be safe and Sweep still works when driven manually.
func TestDisabledIntervalSkipsWorker(t *testing.T) {
	f := newSweepFixture(0)
	f.sweeper.Start()
	f.sweeper.Close()
}

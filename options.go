package coordinator

import (
	"time"

	"go.uber.org/zap"

	"github.com/justbuildpd-sudo/newsbot-sub000/dashboard"
	"github.com/justbuildpd-sudo/newsbot-sub000/expiration"
	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

// DefaultSweepInterval is how often the eviction sweep runs unless
// overridden with WithSweepInterval.
const DefaultSweepInterval = 5 * time.Minute

// settings collects everything configurable at construction time.
type settings struct {
	ttls          map[dashboard.Key]time.Duration
	sweepInterval time.Duration
	metrics       types.Metrics
	logger        *zap.Logger
	now           func() time.Time
}

func defaultSettings() settings {
	return settings{
		ttls:          dashboard.DefaultTTLs(),
		sweepInterval: DefaultSweepInterval,
	}
}

// Option customizes a coordinator at construction time.
type Option func(*settings)

// WithTTL overrides the time-to-live of one key.
func WithTTL(key dashboard.Key, ttl time.Duration) Option {
	return func(s *settings) { s.ttls[key] = ttl }
}

// WithTTLs overrides the time-to-live of several keys at once.
// Keys absent from the map keep their defaults.
func WithTTLs(ttls map[dashboard.Key]time.Duration) Option {
	return func(s *settings) {
		for k, ttl := range ttls {
			s.ttls[k] = ttl
		}
	}
}

// WithSweepInterval changes how often the eviction sweep runs.
// A non-positive interval disables the background sweep entirely;
// Sweep can still be called manually.
func WithSweepInterval(d time.Duration) Option {
	return func(s *settings) { s.sweepInterval = d }
}

// WithMetrics plugs in a metrics sink.
func WithMetrics(m types.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithLogger plugs in a logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithClock replaces the wall clock. Tests use this to drive TTL expiry
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func (c *Coordinator) applySettings(s settings) {
	ttls := make(map[string]time.Duration, len(s.ttls))
	for k, ttl := range s.ttls {
		ttls[string(k)] = ttl
	}
	c.strategy = expiration.NewExpireAfterWrite(ttls, 0)

	if s.metrics != nil {
		c.metrics = s.metrics
	}
	if s.logger != nil {
		c.logger = s.logger
	}
	if s.now != nil {
		c.now = s.now
	}
}

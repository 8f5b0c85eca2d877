package cache

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cardfx-service/internal/domain/model"
	"cardfx-service/pkg/logger"
)

// MemoryCache is a process-local rate cache with a fixed TTL. Staleness is
// checked lazily on Get; there is no background eviction. Each provider owns
// its own instance, so keys never collide across providers.
type MemoryCache struct {
	mutex    sync.RWMutex
	entries  map[string]model.CacheEntry
	cacheTTL time.Duration
	now      func() time.Time
	log      *logger.Logger

	name   string
	events *prometheus.CounterVec
}

func NewMemoryCache(cacheTTL time.Duration, log *logger.Logger) *MemoryCache {
	return &MemoryCache{
		entries:  make(map[string]model.CacheEntry),
		cacheTTL: cacheTTL,
		now:      time.Now,
		log:      log,
	}
}

// WithClock overrides the time source. Tests use it to step past the TTL.
func (c *MemoryCache) WithClock(now func() time.Time) *MemoryCache {
	c.now = now
	return c
}

// WithMetrics labels cache lookups under the given cache name on the shared
// events counter.
func (c *MemoryCache) WithMetrics(name string, events *prometheus.CounterVec) *MemoryCache {
	c.name = name
	c.events = events
	return c
}

func (c *MemoryCache) record(event string) {
	if c.events != nil {
		c.events.WithLabelValues(c.name, event).Inc()
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (model.CacheEntry, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, found := c.entries[key]
	if !found {
		c.record("miss")
		c.log.Debug("Cache miss", "key", key)
		return model.CacheEntry{}, false
	}

	if c.now().Sub(entry.StoredAt) > c.cacheTTL {
		c.record("expired")
		c.log.Debug("Cache entry expired", "key", key)
		return model.CacheEntry{}, false
	}

	c.record("hit")
	c.log.Debug("Cache hit", "key", key)
	return entry, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, rate model.Rate) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = model.CacheEntry{
		Rate:     rate,
		StoredAt: c.now(),
	}
	c.log.Debug("Cache set", "key", key)

	return nil
}

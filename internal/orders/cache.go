package orders

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fieldserv/openorders/internal/metrics"
	"github.com/google/uuid"
)

// DefaultCacheTTL is how long a loaded collection stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// snapshot is one immutable load of the collection. Readers share the
// record slice and must not mutate it; query paths copy before sorting.
type snapshot struct {
	records  []OrderRecord
	loadedAt time.Time
	loadID   string
}

// Cache is the single-slot, whole-collection cache in front of the
// Loader. Snapshots are published with an atomic pointer swap so readers
// never observe a partially built collection, and a mutex with a
// double-check serializes refills so a burst of stale readers triggers
// exactly one load.
type Cache struct {
	loader  *Loader
	ttl     time.Duration
	metrics *metrics.Registry

	mu      sync.Mutex // guards refresh, not reads
	current atomic.Pointer[snapshot]
}

// NewCache wraps loader with a TTL cache. reg may be nil.
func NewCache(loader *Loader, ttl time.Duration, reg *metrics.Registry) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{loader: loader, ttl: ttl, metrics: reg}
}

// Records returns the cached collection, refreshing it first when the
// last load is older than the TTL. A failed refresh publishes an empty
// snapshot; the next stale check retries.
func (c *Cache) Records() []OrderRecord {
	if snap := c.current.Load(); snap != nil && time.Since(snap.loadedAt) < c.ttl {
		if c.metrics != nil {
			c.metrics.CacheHits.Inc()
		}
		return snap.records
	}
	return c.refresh()
}

// refresh reloads from the source and publishes a new snapshot.
func (c *Cache) refresh() []OrderRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if snap := c.current.Load(); snap != nil && time.Since(snap.loadedAt) < c.ttl {
		return snap.records
	}

	if c.metrics != nil {
		c.metrics.CacheMisses.Inc()
		c.metrics.LoadsTotal.Inc()
	}

	loadID := uuid.NewString()
	result, err := c.loader.Load()
	if err != nil {
		if errors.Is(err, ErrSourceUnavailable) {
			slog.Warn("source unavailable, serving empty collection", "load_id", loadID, "error", err)
		} else {
			slog.Error("source load failed", "load_id", loadID, "error", err)
		}
		if c.metrics != nil {
			c.metrics.LoadFailures.Inc()
		}
		result = &LoadResult{}
	}

	if c.metrics != nil {
		c.metrics.LoadDurationSec.Observe(result.Duration.Seconds())
		c.metrics.RowsLoaded.Set(float64(len(result.Records)))
		c.metrics.ParseFallbacks.Add(float64(result.Fallbacks))
	}

	slog.Info("source loaded",
		"load_id", loadID,
		"rows", len(result.Records),
		"fallbacks", result.Fallbacks,
		"duration_ms", result.Duration.Milliseconds(),
	)

	snap := &snapshot{
		records:  result.Records,
		loadedAt: time.Now(),
		loadID:   loadID,
	}
	c.current.Store(snap)
	return snap.records
}

// Invalidate drops the current snapshot so the next read reloads.
func (c *Cache) Invalidate() {
	c.current.Store(nil)
}

package orders

import (
	"time"

	"github.com/fieldserv/openorders/internal/metrics"
)

// Service is the query engine over the cached collection. Search,
// Stats, and FilterOptions all read through the same single-slot cache,
// so results computed at the same instant reflect the same load.
type Service struct {
	cache   *Cache
	metrics *metrics.Registry
}

// NewService builds the query engine on top of loader. reg may be nil.
func NewService(loader *Loader, ttl time.Duration, reg *metrics.Registry) *Service {
	return &Service{
		cache:   NewCache(loader, ttl, reg),
		metrics: reg,
	}
}

// Records returns the current collection, loading it if stale.
func (s *Service) Records() []OrderRecord {
	return s.cache.Records()
}

// Invalidate forces a reload on the next read. Exposed for tests.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}

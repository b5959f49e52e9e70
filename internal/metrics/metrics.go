// Package metrics exposes prometheus instrumentation for the loader,
// cache, and query paths on an application-owned registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	LoadsTotal      prometheus.Counter
	LoadFailures    prometheus.Counter
	LoadDurationSec prometheus.Histogram
	RowsLoaded      prometheus.Gauge
	ParseFallbacks  prometheus.Counter

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	SearchRequests prometheus.Counter
	StatsRequests  prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	loads := prometheus.NewCounter(prometheus.CounterOpts{Name: "openorders_loads_total"})
	loadFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "openorders_load_failures_total"})
	loadDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "openorders_load_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	rowsLoaded := prometheus.NewGauge(prometheus.GaugeOpts{Name: "openorders_rows_loaded"})
	parseFallbacks := prometheus.NewCounter(prometheus.CounterOpts{Name: "openorders_parse_fallbacks_total"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{Name: "openorders_cache_hits_total"})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{Name: "openorders_cache_misses_total"})

	searches := prometheus.NewCounter(prometheus.CounterOpts{Name: "openorders_search_requests_total"})
	stats := prometheus.NewCounter(prometheus.CounterOpts{Name: "openorders_stats_requests_total"})

	r.MustRegister(loads, loadFailures, loadDuration, rowsLoaded, parseFallbacks,
		cacheHits, cacheMisses, searches, stats)

	return &Registry{
		reg:             r,
		LoadsTotal:      loads,
		LoadFailures:    loadFailures,
		LoadDurationSec: loadDuration,
		RowsLoaded:      rowsLoaded,
		ParseFallbacks:  parseFallbacks,
		CacheHits:       cacheHits,
		CacheMisses:     cacheMisses,
		SearchRequests:  searches,
		StatsRequests:   stats,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

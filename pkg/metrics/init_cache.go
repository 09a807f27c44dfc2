package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initCacheMetrics() {
	r.CacheHitsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "chunkstore_cache_hits_total",
			Help: "Total number of chunk cache hits",
		},
	)

	r.CacheMissesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "chunkstore_cache_misses_total",
			Help: "Total number of chunk cache misses",
		},
	)

	r.CacheSize = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chunkstore_cache_entries",
			Help: "Current number of cached chunks",
		},
	)

	r.CacheCapacity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chunkstore_cache_capacity",
			Help: "Configured chunk cache capacity",
		},
	)

	r.CacheHitRatio = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chunkstore_cache_hit_ratio",
			Help: "Hit ratio of the chunk cache (0.0-1.0)",
		},
	)

	r.CacheEvictions = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chunkstore_cache_evictions",
			Help: "Chunks evicted from the cache since startup",
		},
	)

	r.CachePressureCleanups = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chunkstore_cache_pressure_cleanups",
			Help: "Memory-pressure cleanup sweeps performed by the cache",
		},
	)
}

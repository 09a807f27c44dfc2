package metrics

import (
	"time"

	"github.com/voxelmesh/chunkstore/pkg/cache"
	"github.com/voxelmesh/chunkstore/pkg/pools"
)

// RecordCacheHit records a chunk served from the cache
func (r *Registry) RecordCacheHit() {
	r.CacheHitsTotal.Inc()
}

// RecordCacheMiss records a chunk that had to be loaded
func (r *Registry) RecordCacheMiss() {
	r.CacheMissesTotal.Inc()
}

// RecordLoad records a chunk load operation
func (r *Registry) RecordLoad(status string, duration time.Duration) {
	r.LoadsTotal.WithLabelValues(status).Inc()
	r.LoadDuration.Observe(duration.Seconds())
}

// RecordDecode records a tag stream decode operation
func (r *Registry) RecordDecode(status string, duration time.Duration) {
	r.DecodeTotal.WithLabelValues(status).Inc()
	r.DecodeDuration.Observe(duration.Seconds())
}

// SyncCacheStats mirrors a cache statistics snapshot into the gauges
func (r *Registry) SyncCacheStats(s cache.Stats) {
	r.CacheSize.Set(float64(s.Size))
	r.CacheCapacity.Set(float64(s.Capacity))
	r.CacheHitRatio.Set(s.HitRatio)
	r.CacheEvictions.Set(float64(s.Evictions))
	r.CachePressureCleanups.Set(float64(s.Cleanups))
	if s.Known {
		r.MemoryUtilization.Set(s.Utilization)
	}
}

// SyncPoolStats mirrors a pool statistics snapshot into the gauges
func (r *Registry) SyncPoolStats(s pools.PoolStats) {
	r.PoolStored.Set(float64(s.Stored))
	r.PoolInUse.Set(float64(s.InUse))
	r.PoolCreated.Set(float64(s.Created))
}

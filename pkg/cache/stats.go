package cache

import (
	"reflect"

	"github.com/voxelmesh/chunkstore/pkg/logging"
)

// Stats is a point-in-time snapshot of cache state and counters. Counters
// are monotonically increasing for the lifetime of the cache.
type Stats struct {
	Size      int
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRatio  float64
	Evictions uint64
	Cleanups  uint64

	// Utilization is the ambient memory ratio sampled at snapshot time;
	// Known is false when no pressure source is configured or the source
	// has no budget.
	Utilization float64
	Known       bool
}

// Stats returns a snapshot of cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	s := Stats{
		Size:      c.Size(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Cleanups:  c.cleanups.Load(),
	}

	if total := s.Hits + s.Misses; total > 0 {
		s.HitRatio = float64(s.Hits) / float64(total)
	}

	if c.pressure != nil {
		s.Utilization, s.Known = c.pressure.Utilization()
	}

	return s
}

// HitRatio returns hits/(hits+misses), 0 when there were no accesses.
func (c *Cache[K, V]) HitRatio() float64 {
	hits := c.hits.Load()
	total := hits + c.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// LogStats writes a summary of the cache counters at info level.
func (c *Cache[K, V]) LogStats(logger logging.Logger) {
	s := c.Stats()
	fields := []logging.Field{
		logging.CacheSize(s.Size, s.Capacity),
		logging.Uint64("hits", s.Hits),
		logging.Uint64("misses", s.Misses),
		logging.Float64("hit_ratio", s.HitRatio),
		logging.Uint64("evictions", s.Evictions),
		logging.Uint64("cleanups", s.Cleanups),
	}
	if s.Known {
		fields = append(fields, logging.Utilization(s.Utilization))
	}
	logger.Info("cache statistics", fields...)
}

// isNil reports whether v holds a nil value behind its interface; typed
// nil pointers would slip past a plain comparison.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

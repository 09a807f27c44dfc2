package chunk

import (
	"errors"
	"fmt"
	"time"

	"github.com/voxelmesh/chunkstore/pkg/cache"
	"github.com/voxelmesh/chunkstore/pkg/logging"
	"github.com/voxelmesh/chunkstore/pkg/memory"
	"github.com/voxelmesh/chunkstore/pkg/metrics"
	"github.com/voxelmesh/chunkstore/pkg/pools"
)

// Cache sizing. A decoded column costs roughly BytesPerChunk; the
// cache gets a quarter of the memory budget, clamped to a sane range.
const (
	BytesPerChunk = 2 * 1024 * 1024
	MinCacheSize  = 50
	MaxCacheSize  = 1000

	// MaintenanceThreshold is the utilization above which Maintenance
	// drops all buffered chunks.
	MaintenanceThreshold = 0.85
)

// ErrOutOfBounds is returned for chunk requests outside the buffer's
// configured area.
var ErrOutOfBounds = errors.New("chunk out of bounds")

// Loader produces decoded block data for a chunk, typically by reading
// and decoding region files. A nil result with nil error means the
// chunk does not exist.
type Loader interface {
	LoadBlocks(c Coord) (*BlockData, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(c Coord) (*BlockData, error)

func (f LoaderFunc) LoadBlocks(c Coord) (*BlockData, error) {
	return f(c)
}

// Bounds is the inclusive chunk-grid rectangle a buffer serves.
type Bounds struct {
	MinX, MaxX int32
	MinZ, MaxZ int32
}

// Contains reports whether the coordinate lies inside the bounds.
func (b Bounds) Contains(c Coord) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Z >= b.MinZ && c.Z <= b.MaxZ
}

// OptimalCacheSize derives a chunk cache capacity from a memory budget
// in bytes: a quarter of the budget at BytesPerChunk per entry,
// clamped to [MinCacheSize, MaxCacheSize].
func OptimalCacheSize(budgetBytes uint64) int {
	size := int(budgetBytes / 4 / BytesPerChunk)
	if size < MinCacheSize {
		return MinCacheSize
	}
	if size > MaxCacheSize {
		return MaxCacheSize
	}
	return size
}

// BufferConfig configures a Buffer. Zero values pick defaults.
type BufferConfig struct {
	// CacheSize is the chunk cache capacity; 0 derives it from
	// MemoryBudget via OptimalCacheSize.
	CacheSize int

	// PoolSize bounds the carrier pool; 0 uses DefaultPoolSize.
	PoolSize int

	// MemoryBudget is the memory budget in bytes used for cache sizing
	// and pressure sampling; 0 falls back to the runtime's limit.
	MemoryBudget uint64

	Pressure memory.PressureSource
	Logger   logging.Logger
	Metrics  *metrics.Registry
}

// DefaultBufferConfig returns a config with sensible defaults.
func DefaultBufferConfig() BufferConfig {
	return BufferConfig{
		PoolSize: DefaultPoolSize,
	}
}

// Buffer serves decoded chunk data for an area, keeping recently used
// columns in a pressure-aware cache and recycling carriers through a
// bounded pool.
type Buffer struct {
	bounds   Bounds
	loader   Loader
	cache    *cache.Cache[Coord, *BlockData]
	pool     *BlockPool
	pressure memory.PressureSource
	logger   logging.Logger
	metrics  *metrics.Registry
}

// NewBuffer creates a buffer for the given area backed by loader.
func NewBuffer(bounds Bounds, loader Loader, cfg BufferConfig) (*Buffer, error) {
	if loader == nil {
		return nil, errors.New("chunk: buffer requires a loader")
	}

	pressure := cfg.Pressure
	if pressure == nil {
		pressure = memory.NewRuntimeSource(cfg.MemoryBudget)
	}

	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = OptimalCacheSize(cfg.MemoryBudget)
	}

	poolSize := cfg.PoolSize
	if poolSize < 1 {
		poolSize = DefaultPoolSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.DefaultLogger().With(logging.Component("chunk-buffer"))
	}

	b := &Buffer{
		bounds:   bounds,
		loader:   loader,
		cache:    cache.New[Coord, *BlockData](cacheSize, pressure),
		pool:     NewBlockPool(poolSize),
		pressure: pressure,
		logger:   logger,
		metrics:  cfg.Metrics,
	}

	logger.Info("chunk buffer initialized",
		logging.Int("cache_size", cacheSize),
		logging.Int("pool_size", poolSize),
	)
	return b, nil
}

// GetBlocks returns the block data for a chunk, loading and caching it
// on a miss. A nil result with nil error means the chunk does not
// exist in the source.
func (b *Buffer) GetBlocks(c Coord) (*BlockData, error) {
	if !b.bounds.Contains(c) {
		return nil, fmt.Errorf("chunk %s: %w", c, ErrOutOfBounds)
	}

	if data, ok := b.cache.Get(c); ok {
		if b.metrics != nil {
			b.metrics.RecordCacheHit()
		}
		return data, nil
	}
	if b.metrics != nil {
		b.metrics.RecordCacheMiss()
	}

	start := time.Now()
	data, err := b.loader.LoadBlocks(c)
	if err != nil {
		if b.metrics != nil {
			b.metrics.RecordLoad("error", time.Since(start))
		}
		b.logger.Warn("chunk load failed",
			logging.Chunk(c.X, c.Z),
			logging.Error(err),
		)
		return nil, fmt.Errorf("load chunk %s: %w", c, err)
	}
	if b.metrics != nil {
		b.metrics.RecordLoad("success", time.Since(start))
	}

	b.cache.Put(c, data)
	return data, nil
}

// Borrow takes a pooled carrier wrapping the given data.
func (b *Buffer) Borrow(data *BlockData) *PooledBlocks {
	return b.pool.BorrowWith(data)
}

// Release returns a carrier to the pool.
func (b *Buffer) Release(obj *PooledBlocks) {
	b.pool.Return(obj)
}

// RemoveChunk drops a single chunk from the cache.
func (b *Buffer) RemoveChunk(c Coord) {
	b.cache.Remove(c)
}

// ChunkCount returns the number of chunks currently cached.
func (b *Buffer) ChunkCount() int {
	return b.cache.Size()
}

// Clear drops all cached chunks and pooled carriers. Statistics
// counters survive.
func (b *Buffer) Clear() {
	b.cache.Clear()
	b.pool.Clear()
	b.logger.Debug("chunk buffer cleared")
}

// BufferStats aggregates cache and pool statistics.
type BufferStats struct {
	Cache cache.Stats
	Pool  pools.PoolStats
}

// Stats returns a snapshot of the buffer's statistics.
func (b *Buffer) Stats() BufferStats {
	return BufferStats{
		Cache: b.cache.Stats(),
		Pool:  b.pool.Stats(),
	}
}

// Maintenance samples memory utilization and drops all buffered data
// when it exceeds MaintenanceThreshold. Call it periodically between
// units of work.
func (b *Buffer) Maintenance() {
	stats := b.Stats()
	if b.metrics != nil {
		b.metrics.SyncCacheStats(stats.Cache)
		b.metrics.SyncPoolStats(stats.Pool)
		if h, ok := b.pressure.(memory.HintReporter); ok {
			b.metrics.ReclaimHintsTotal.Set(float64(h.ReclaimHints()))
		}
	}

	if stats.Cache.Known && stats.Cache.Utilization > MaintenanceThreshold {
		b.logger.Warn("memory utilization high, dropping buffered chunks",
			logging.Utilization(stats.Cache.Utilization),
			logging.CacheSize(stats.Cache.Size, stats.Cache.Capacity),
		)
		b.Clear()
		return
	}

	b.logger.Debug("buffer maintenance",
		logging.CacheSize(stats.Cache.Size, stats.Cache.Capacity),
		logging.Float64("hit_ratio", stats.Cache.HitRatio),
		logging.Uint64("pool_in_use", stats.Pool.InUse),
	)
}

// LogStats writes a summary of the buffer's statistics at info level.
func (b *Buffer) LogStats() {
	stats := b.Stats()
	b.logger.Info("chunk buffer statistics",
		logging.CacheSize(stats.Cache.Size, stats.Cache.Capacity),
		logging.Uint64("hits", stats.Cache.Hits),
		logging.Uint64("misses", stats.Cache.Misses),
		logging.Float64("hit_ratio", stats.Cache.HitRatio),
		logging.Uint64("evictions", stats.Cache.Evictions),
		logging.Uint64("cleanups", stats.Cache.Cleanups),
		logging.Uint64("pool_borrowed", stats.Pool.Borrowed),
		logging.Uint64("pool_returned", stats.Pool.Returned),
		logging.Uint64("pool_created", stats.Pool.Created),
	)
}

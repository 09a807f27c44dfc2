package chunk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelmesh/chunkstore/pkg/logging"
	"github.com/voxelmesh/chunkstore/pkg/memory"
	"github.com/voxelmesh/chunkstore/pkg/metrics"
)

type countingLoader struct {
	loads int
	fail  error
}

func (l *countingLoader) LoadBlocks(c Coord) (*BlockData, error) {
	l.loads++
	if l.fail != nil {
		return nil, l.fail
	}
	return &BlockData{Coord: c, Blocks: []uint16{uint16(c.X), uint16(c.Z)}}, nil
}

func testBounds() Bounds {
	return Bounds{MinX: -8, MaxX: 8, MinZ: -8, MaxZ: 8}
}

func newTestBuffer(t *testing.T, loader Loader, cfg BufferConfig) *Buffer {
	t.Helper()
	cfg.Logger = logging.NopLogger{}
	if cfg.Pressure == nil {
		cfg.Pressure = memory.NewUnavailableSource()
	}
	b, err := NewBuffer(testBounds(), loader, cfg)
	require.NoError(t, err)
	return b
}

func TestBufferLoadsOnceAndCaches(t *testing.T) {
	loader := &countingLoader{}
	b := newTestBuffer(t, loader, BufferConfig{CacheSize: 4})

	c := Coord{X: 1, Z: 2}
	first, err := b.GetBlocks(c)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := b.GetBlocks(c)
	require.NoError(t, err)
	assert.Same(t, first, second, "cached hit should return the same data")
	assert.Equal(t, 1, loader.loads, "loader should be called once")
	assert.Equal(t, 1, b.ChunkCount())
}

func TestBufferOutOfBounds(t *testing.T) {
	loader := &countingLoader{}
	b := newTestBuffer(t, loader, BufferConfig{CacheSize: 4})

	_, err := b.GetBlocks(Coord{X: 100, Z: 0})
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Zero(t, loader.loads, "out-of-bounds request must not hit the loader")
}

func TestBufferLoadError(t *testing.T) {
	cause := errors.New("region file corrupt")
	loader := &countingLoader{fail: cause}
	b := newTestBuffer(t, loader, BufferConfig{CacheSize: 4})

	_, err := b.GetBlocks(Coord{X: 1, Z: 1})
	require.ErrorIs(t, err, cause)
	assert.Zero(t, b.ChunkCount(), "failed loads must not be cached")
}

func TestBufferMissingChunkNotCached(t *testing.T) {
	loader := LoaderFunc(func(c Coord) (*BlockData, error) {
		return nil, nil
	})
	b := newTestBuffer(t, loader, BufferConfig{CacheSize: 4})

	data, err := b.GetBlocks(Coord{X: 0, Z: 0})
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Zero(t, b.ChunkCount(), "nil chunks must not occupy cache slots")
}

func TestBufferClear(t *testing.T) {
	loader := &countingLoader{}
	b := newTestBuffer(t, loader, BufferConfig{CacheSize: 8})

	for x := int32(0); x < 4; x++ {
		_, err := b.GetBlocks(Coord{X: x, Z: 0})
		require.NoError(t, err)
	}
	require.Equal(t, 4, b.ChunkCount())

	b.Clear()
	assert.Zero(t, b.ChunkCount())

	stats := b.Stats()
	assert.Equal(t, uint64(4), stats.Cache.Misses, "counters survive Clear")
}

func TestBufferMaintenanceDropsUnderPressure(t *testing.T) {
	loader := &countingLoader{}
	pressure := memory.NewFixedSource(0.5)
	b := newTestBuffer(t, loader, BufferConfig{CacheSize: 8, Pressure: pressure})

	for x := int32(0); x < 4; x++ {
		_, err := b.GetBlocks(Coord{X: x, Z: 0})
		require.NoError(t, err)
	}

	b.Maintenance()
	assert.Equal(t, 4, b.ChunkCount(), "maintenance below threshold keeps chunks")

	pressure.SetRatio(0.9)
	b.Maintenance()
	assert.Zero(t, b.ChunkCount(), "maintenance above threshold drops everything")
}

func TestBufferMetricsWiring(t *testing.T) {
	loader := &countingLoader{}
	reg := metrics.NewRegistry()
	b := newTestBuffer(t, loader, BufferConfig{CacheSize: 4, Metrics: reg})

	c := Coord{X: 2, Z: 3}
	_, err := b.GetBlocks(c)
	require.NoError(t, err)
	_, err = b.GetBlocks(c)
	require.NoError(t, err)
	b.Maintenance()

	families, err := reg.GetPrometheusRegistry().Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, 1.0, values["chunkstore_cache_hits_total"])
	assert.Equal(t, 1.0, values["chunkstore_cache_misses_total"])
	assert.Equal(t, 1.0, values["chunkstore_loads_total"])
	assert.Equal(t, 1.0, values["chunkstore_cache_entries"])
}

func TestBufferMaintenanceMirrorsReclaimHints(t *testing.T) {
	loader := &countingLoader{}
	pressure := memory.NewFixedSource(0.95)
	reg := metrics.NewRegistry()
	b := newTestBuffer(t, loader, BufferConfig{CacheSize: 8, Pressure: pressure, Metrics: reg})

	// Every put at critical utilization issues a reclaim hint.
	for x := int32(0); x < 3; x++ {
		_, err := b.GetBlocks(Coord{X: x, Z: 0})
		require.NoError(t, err)
	}
	require.GreaterOrEqual(t, pressure.ReclaimHints(), uint64(1))

	b.Maintenance()

	families, err := reg.GetPrometheusRegistry().Gather()
	require.NoError(t, err)
	var gauge float64
	for _, mf := range families {
		if mf.GetName() == "chunkstore_memory_reclaim_hints_total" {
			gauge = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, float64(pressure.ReclaimHints()), gauge)
}

func TestBufferBorrowRelease(t *testing.T) {
	loader := &countingLoader{}
	b := newTestBuffer(t, loader, BufferConfig{CacheSize: 4, PoolSize: 2})

	data, err := b.GetBlocks(Coord{X: 1, Z: 0})
	require.NoError(t, err)

	obj := b.Borrow(data)
	require.True(t, obj.HasData())
	assert.Same(t, data, obj.Data())

	b.Release(obj)
	assert.Equal(t, uint64(0), b.Stats().Pool.InUse)
}

func TestOptimalCacheSize(t *testing.T) {
	tests := []struct {
		name   string
		budget uint64
		want   int
	}{
		{"zero budget clamps to minimum", 0, MinCacheSize},
		{"small budget clamps to minimum", 64 * 1024 * 1024, MinCacheSize},
		{"mid budget scales", 4 * 1024 * 1024 * 1024, 512},
		{"huge budget clamps to maximum", 64 * 1024 * 1024 * 1024, MaxCacheSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OptimalCacheSize(tt.budget))
		})
	}
}

func TestNewBufferRequiresLoader(t *testing.T) {
	_, err := NewBuffer(testBounds(), nil, DefaultBufferConfig())
	require.Error(t, err)
}

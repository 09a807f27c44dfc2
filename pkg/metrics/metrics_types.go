package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the chunk pipeline
type Registry struct {
	// Cache Metrics
	CacheHitsTotal        prometheus.Counter
	CacheMissesTotal      prometheus.Counter
	CacheSize             prometheus.Gauge
	CacheCapacity         prometheus.Gauge
	CacheHitRatio         prometheus.Gauge
	CacheEvictions        prometheus.Gauge
	CachePressureCleanups prometheus.Gauge

	// Pool Metrics
	PoolStored  prometheus.Gauge
	PoolInUse   prometheus.Gauge
	PoolCreated prometheus.Gauge

	// Loader Metrics
	LoadsTotal   *prometheus.CounterVec
	LoadDuration prometheus.Histogram

	// Decoder Metrics
	DecodeTotal    *prometheus.CounterVec
	DecodeDuration prometheus.Histogram

	// System Metrics
	MemoryUtilization prometheus.Gauge
	ReclaimHintsTotal prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initCacheMetrics()
	r.initPoolMetrics()
	r.initPipelineMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

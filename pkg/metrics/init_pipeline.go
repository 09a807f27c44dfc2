package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	r.LoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chunkstore_loads_total",
			Help: "Total number of chunk load operations",
		},
		[]string{"status"},
	)

	r.LoadDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chunkstore_load_duration_seconds",
			Help:    "Chunk load duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.DecodeTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chunkstore_decode_total",
			Help: "Total number of tag stream decode operations",
		},
		[]string{"status"},
	)

	r.DecodeDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chunkstore_decode_duration_seconds",
			Help:    "Tag stream decode duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)
}

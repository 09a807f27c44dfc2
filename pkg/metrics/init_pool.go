package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPoolMetrics() {
	r.PoolStored = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chunkstore_pool_stored",
			Help: "Objects currently stored in the chunk block pool",
		},
	)

	r.PoolInUse = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chunkstore_pool_in_use",
			Help: "Objects currently borrowed from the chunk block pool",
		},
	)

	r.PoolCreated = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chunkstore_pool_created_total",
			Help: "Objects created by the chunk block pool since startup",
		},
	)
}

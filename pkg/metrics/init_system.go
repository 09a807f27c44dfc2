package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSystemMetrics() {
	r.MemoryUtilization = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chunkstore_memory_utilization",
			Help: "Fraction of the memory budget currently in use (0.0-1.0)",
		},
	)

	r.ReclaimHintsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chunkstore_memory_reclaim_hints_total",
			Help: "Reclaim hints issued to the runtime since startup",
		},
	)
}

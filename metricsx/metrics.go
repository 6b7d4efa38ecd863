package metricsx

import "github.com/prometheus/client_golang/prometheus"

// Knowledge base Prometheus metrics.
var (
	IndexOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kbx",
			Name:      "index_operations_total",
			Help:      "Total number of index lifecycle operations",
		},
		[]string{"operation", "outcome"},
	)

	DocumentsLoadedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kbx",
			Name:      "documents_loaded_total",
			Help:      "Total number of documents submitted for indexing",
		},
		[]string{"outcome"}, // "succeeded" / "failed"
	)

	BatchesSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "kbx",
			Name:      "batches_submitted_total",
			Help:      "Total number of bulk batches submitted",
		},
	)

	BatchFlushDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "kbx",
			Name:      "batch_flush_duration_seconds",
			Help:      "Bulk batch flush duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Register registers the knowledge base metrics on reg. Must be called once per registry.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(IndexOperationsTotal)
	reg.MustRegister(DocumentsLoadedTotal)
	reg.MustRegister(BatchesSubmittedTotal)
	reg.MustRegister(BatchFlushDuration)
}

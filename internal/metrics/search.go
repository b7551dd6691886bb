package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every djinnsearch metric.
const Namespace = "djinnsearch"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "searches_total",
			Help:      "Total number of search submissions",
		},
		[]string{"profile", "outcome"}, // "hits" / "empty" / "no_query" / "error"
	)

	RelaxationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "relaxations_total",
			Help:      "Zero-hit queries retried as a disjunction",
		},
		[]string{"profile"},
	)

	EngineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"profile", "status"},
	)

	IndexedDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "indexed_documents_total",
			Help:      "Documents written to or removed from the index",
		},
		[]string{"status"}, // "indexed" / "deleted" / "failed"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(RelaxationsTotal)
	prometheus.MustRegister(EngineDuration)
	prometheus.MustRegister(IndexedDocumentsTotal)
	searchMetricsRegistered = true
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	ImportsTotal    prometheus.Counter
	FlightsImported prometheus.Counter
	SegmentsSkipped prometheus.Counter
	UnknownAirports prometheus.Counter
	ImportDuration  prometheus.Histogram
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ImportsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "The total number of import runs",
		}),
		FlightsImported: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_imported_total",
			Help:      "The total number of flight records produced by imports",
		}),
		SegmentsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_skipped_total",
			Help:      "The total number of segments skipped due to unresolved airports",
		}),
		UnknownAirports: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_airports_total",
			Help:      "The total number of distinct airport codes that failed resolution",
		}),
		ImportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Time taken to run one import",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Report lifecycle metrics
	ReportsCreated   prometheus.Counter
	ReportsSubmitted prometheus.Counter
	ReportsFiled     prometheus.Counter
	ReportsDeleted   prometheus.Counter
	ReportErrors     *prometheus.CounterVec

	// Query metrics
	ListDuration prometheus.Histogram
	CacheHits    prometheus.Counter

	// Store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
	StoreErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		ReportsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gosar_reports_created_total",
			Help: "Total number of reports created",
		}),
		ReportsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gosar_reports_submitted_total",
			Help: "Total number of reports submitted",
		}),
		ReportsFiled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gosar_reports_filed_total",
			Help: "Total number of reports filed with a regulator reference",
		}),
		ReportsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gosar_reports_deleted_total",
			Help: "Total number of reports deleted",
		}),
		ReportErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosar_report_errors_total",
				Help: "Total number of report operation errors by type",
			},
			[]string{"error_type"},
		),

		ListDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gosar_list_duration_seconds",
			Help:    "Duration of list queries",
			Buckets: prometheus.DefBuckets,
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gosar_report_cache_hits_total",
			Help: "Total number of report cache hits",
		}),

		StoreOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosar_store_operations_total",
				Help: "Total record store operations by type",
			},
			[]string{"operation"},
		),
		StoreDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gosar_store_operation_duration_seconds",
				Help:    "Record store operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		StoreErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gosar_store_errors_total",
				Help: "Total record store errors by operation",
			},
			[]string{"operation"},
		),
	}
}

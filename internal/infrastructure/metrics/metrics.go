package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	OperationsCreated *prometheus.CounterVec
	OperationsDeleted prometheus.Counter
	OperationsSplit   prometheus.Counter
	BalanceSets       prometheus.Counter
	LedgerErrors      *prometheus.CounterVec

	// History metrics
	HistoryBuilds   prometheus.Counter
	HistoryDuration prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Reload bus metrics
	ReloadsPublished prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		OperationsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneta_operations_created_total",
				Help: "Total number of operations created by kind",
			},
			[]string{"kind"},
		),
		OperationsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_operations_deleted_total",
			Help: "Total number of operations deleted",
		}),
		OperationsSplit: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_operations_split_total",
			Help: "Total number of operation splits",
		}),
		BalanceSets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_balance_sets_total",
			Help: "Total number of direct balance edits",
		}),
		LedgerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneta_ledger_errors_total",
				Help: "Total number of refused ledger mutations by class",
			},
			[]string{"class"},
		),

		HistoryBuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_history_builds_total",
			Help: "Total number of history series built",
		}),
		HistoryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "moneta_history_build_duration_seconds",
			Help:    "Duration of history reconstruction",
			Buckets: prometheus.DefBuckets,
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneta_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneta_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		ReloadsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_reloads_published_total",
			Help: "Total reload events published",
		}),
	}
}

// RegisterReloadDropped exposes a drop counter maintained elsewhere, such as
// the reload bus, as a gauge.
func RegisterReloadDropped(f func() float64) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "moneta_reloads_dropped",
		Help: "Reload events dropped on full subscriber buffers",
	}, f)
}

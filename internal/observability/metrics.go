package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// explorer service.
type Metrics struct {
	// Upstream API metrics.
	APIRequests *prometheus.CounterVec   // labels: api={fireball,cad}, outcome={success,network_error,status_error,decode_error,api_error}
	APIDuration *prometheus.HistogramVec // labels: api={fireball,cad}

	// Normalization metrics.
	TablesNormalized *prometheus.CounterVec   // labels: dataset
	TableRows        *prometheus.HistogramVec // labels: dataset

	// Chart metrics.
	ChartsBuilt *prometheus.CounterVec // labels: dataset, outcome={built,skipped}

	// Export sink metrics.
	ExportMessages prometheus.Counter
	ExportErrors   prometheus.Counter
	ExportEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all explorer metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cneos_explorer",
			Name:      "api_requests_total",
			Help:      "Upstream SSD/CNEOS requests by endpoint and outcome.",
		}, []string{"api", "outcome"}),
		APIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cneos_explorer",
			Name:      "api_request_duration_seconds",
			Help:      "Upstream SSD/CNEOS request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"api"}),
		TablesNormalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cneos_explorer",
			Name:      "tables_normalized_total",
			Help:      "Payloads normalized into tables by dataset.",
		}, []string{"dataset"}),
		TableRows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cneos_explorer",
			Name:      "table_rows",
			Help:      "Rows per normalized table by dataset.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"dataset"}),
		ChartsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cneos_explorer",
			Name:      "charts_built_total",
			Help:      "Chart construction attempts by dataset and outcome.",
		}, []string{"dataset", "outcome"}),
		ExportMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cneos_explorer",
			Name:      "export_messages_total",
			Help:      "Total records published to the export topic.",
		}),
		ExportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cneos_explorer",
			Name:      "export_errors_total",
			Help:      "Total export publish failures.",
		}),
		ExportEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cneos_explorer",
			Name:      "export_enabled",
			Help:      "1 when the export sink is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.APIRequests,
		m.APIDuration,
		m.TablesNormalized,
		m.TableRows,
		m.ChartsBuilt,
		m.ExportMessages,
		m.ExportErrors,
		m.ExportEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		APIRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cneos_explorer", Name: "api_requests_total"}, []string{"api", "outcome"}),
		APIDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "cneos_explorer", Name: "api_request_duration_seconds"}, []string{"api"}),
		TablesNormalized: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cneos_explorer", Name: "tables_normalized_total"}, []string{"dataset"}),
		TableRows:        prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "cneos_explorer", Name: "table_rows"}, []string{"dataset"}),
		ChartsBuilt:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cneos_explorer", Name: "charts_built_total"}, []string{"dataset", "outcome"}),
		ExportMessages:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cneos_explorer", Name: "export_messages_total"}),
		ExportErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cneos_explorer", Name: "export_errors_total"}),
		ExportEnabled:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "cneos_explorer", Name: "export_enabled"}),
	}
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the HTTP surface and the reporting
// engine. Dashboard builds are the dominant cost in the application, so
// their duration and per-scope counts are tracked separately from plain
// request counters.
type Metrics struct {
	RequestsTotal          *prometheus.CounterVec
	RequestDuration        *prometheus.HistogramVec
	DashboardBuilds        *prometheus.CounterVec
	DashboardBuildDuration prometheus.Histogram
	OutcomeLookupFailures  prometheus.Counter
}

// New creates a Metrics instance with all collectors registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clotrack_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clotrack_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and path",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "path"}),
		DashboardBuilds: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clotrack_dashboard_builds_total",
			Help: "Total number of dashboard builds by data scope and result",
		}, []string{"scope", "result"}),
		DashboardBuildDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "clotrack_dashboard_build_duration_seconds",
			Help:    "Duration of full dashboard aggregation runs",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		OutcomeLookupFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clotrack_outcome_lookup_failures_total",
			Help: "Total number of per-course outcome enrichment failures",
		}),
	}
}

// ObserveDashboardBuild records one aggregation run.
func (m *Metrics) ObserveDashboardBuild(scope string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.DashboardBuilds.WithLabelValues(scope, result).Inc()
	m.DashboardBuildDuration.Observe(time.Since(start).Seconds())
}

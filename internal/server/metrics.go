package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the chart service
type Metrics struct {
	ChartRenders        *prometheus.CounterVec   // labels: chart, format
	ChartRenderDuration *prometheus.HistogramVec // labels: format
	SnapshotFetchErrors prometheus.Counter
	ReportsGenerated    prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ChartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chart_renders_total",
			Help: "Total charts rendered, by chart and output format",
		}, []string{"chart", "format"}),
		ChartRenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chart_render_duration_seconds",
			Help:    "Chart render latency, by output format",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"format"}),
		SnapshotFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snapshot_fetch_errors_total",
			Help: "Total failed snapshot fetches",
		}),
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_reports_generated_total",
			Help: "Total dashboard reports generated and stored",
		}),
	}

	reg.MustRegister(
		m.ChartRenders,
		m.ChartRenderDuration,
		m.SnapshotFetchErrors,
		m.ReportsGenerated,
	)
	return m
}

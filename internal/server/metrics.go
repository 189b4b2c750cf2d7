package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	ReportsServed    *prometheus.CounterVec
	GenerateDuration *prometheus.HistogramVec
}

// NewMetrics registers the report collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReportsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rinkreport",
			Name:      "reports_served_total",
			Help:      "Reports served over HTTP, by team, format and outcome.",
		}, []string{"team", "format", "status"}),
		GenerateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rinkreport",
			Name:      "report_generate_seconds",
			Help:      "Wall time to build and render one report.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"format"}),
	}
	reg.MustRegister(m.ReportsServed, m.GenerateDuration)
	return m
}

// ObserveReport records one served report outcome.
func (m *Metrics) ObserveReport(team, format, status string, duration time.Duration) {
	m.ReportsServed.WithLabelValues(team, format, status).Inc()
	if status == "ok" {
		m.GenerateDuration.WithLabelValues(format).Observe(duration.Seconds())
	}
}

// Package metrics exposes Prometheus instruments for the clinic backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SchedulingMetrics counts conflict detections and override decisions in the
// appointment workflow.
type SchedulingMetrics struct {
	conflictsTotal *prometheus.CounterVec
	overridesTotal *prometheus.CounterVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		conflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aihc",
			Subsystem: "scheduling",
			Name:      "conflicts_total",
			Help:      "Double-booking conflicts flagged at submit time",
		}, []string{"kind"}),
		overridesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aihc",
			Subsystem: "scheduling",
			Name:      "overrides_total",
			Help:      "Conflict override decisions by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.conflictsTotal, m.overridesTotal)
	return m
}

func (m *SchedulingMetrics) ObserveConflict(doctor, patient bool) {
	if m == nil {
		return
	}
	if doctor {
		m.conflictsTotal.WithLabelValues("doctor").Inc()
	}
	if patient {
		m.conflictsTotal.WithLabelValues("patient").Inc()
	}
}

func (m *SchedulingMetrics) ObserveOverride(outcome string) {
	if m == nil {
		return
	}
	m.overridesTotal.WithLabelValues(outcome).Inc()
}

// HTTPMetrics instruments the REST surface.
type HTTPMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aihc",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aihc",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency)
	return m
}

func (m *HTTPMetrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, method, status).Inc()
	m.requestLatency.WithLabelValues(route).Observe(seconds)
}

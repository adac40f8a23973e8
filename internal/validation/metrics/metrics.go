package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the validation feature.
type Metrics struct {
	ValidationsTotal   *prometheus.CounterVec
	ValidationDuration prometheus.Histogram
	RecordWriteErrors  prometheus.Counter
	AuditEventsDropped prometheus.Counter
}

// New creates and registers all validation metrics.
func New() *Metrics {
	return &Metrics{
		ValidationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "singate_validations_total",
			Help: "Total number of SIN validation requests by outcome",
		}, []string{"outcome"}),
		ValidationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "singate_validation_duration_seconds",
			Help:    "End-to-end duration of validation requests",
			Buckets: prometheus.DefBuckets,
		}),
		RecordWriteErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "singate_validation_record_write_errors_total",
			Help: "Validation record writes that failed; the request itself still succeeds",
		}),
		AuditEventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "singate_audit_events_dropped_total",
			Help: "Audit events dropped because the audit inbox was full",
		}),
	}
}

// IncrementValidations increments the outcome-labelled validation counter.
func (m *Metrics) IncrementValidations(outcome string) {
	m.ValidationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveDuration records one request duration in seconds.
func (m *Metrics) ObserveDuration(seconds float64) {
	m.ValidationDuration.Observe(seconds)
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the enrollment ledger.
type Metrics struct {
	Enrollments           prometheus.Counter
	ProgressReports       *prometheus.CounterVec
	RefundsReleased       prometheus.Counter
	RefundAmountReleased  prometheus.Counter
	CompletionsTriggered  prometheus.Counter
	RecordProgressLatency prometheus.Histogram
}

// New creates a Metrics instance with all ledger metrics registered.
func New() *Metrics {
	return &Metrics{
		Enrollments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courze_enrollments_total",
			Help: "Total number of successful enrollments",
		}),
		ProgressReports: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "courze_progress_reports_total",
			Help: "Progress reports by outcome",
		}, []string{"outcome"}), // outcome: "accepted", "rejected"
		RefundsReleased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courze_refunds_released_total",
			Help: "Total number of progress reports that released a non-zero refund delta",
		}),
		RefundAmountReleased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courze_refund_amount_released_total",
			Help: "Cumulative refund amount released, in the smallest currency unit",
		}),
		CompletionsTriggered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courze_completions_total",
			Help: "Total number of course completions (first report at progress 100)",
		}),
		RecordProgressLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "courze_record_progress_duration_seconds",
			Help:    "Duration of the full record-progress pipeline",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementEnrollments records a successful enrollment.
func (m *Metrics) IncrementEnrollments() {
	if m != nil {
		m.Enrollments.Inc()
	}
}

// IncrementProgressReports records a progress report outcome.
func (m *Metrics) IncrementProgressReports(outcome string) {
	if m != nil {
		m.ProgressReports.WithLabelValues(outcome).Inc()
	}
}

// ObserveRefundDelta records a released refund delta.
func (m *Metrics) ObserveRefundDelta(delta float64) {
	if m != nil && delta > 0 {
		m.RefundsReleased.Inc()
		m.RefundAmountReleased.Add(delta)
	}
}

// IncrementCompletions records a completion trigger.
func (m *Metrics) IncrementCompletions() {
	if m != nil {
		m.CompletionsTriggered.Inc()
	}
}

// ObserveRecordProgressLatency records the pipeline duration.
func (m *Metrics) ObserveRecordProgressLatency(d time.Duration) {
	if m != nil {
		m.RecordProgressLatency.Observe(d.Seconds())
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the certificate issuer.
type Metrics struct {
	CertificatesMinted prometheus.Counter
	DuplicateMints     prometheus.Counter
}

// New creates a Metrics instance with all issuer metrics registered.
func New() *Metrics {
	return &Metrics{
		CertificatesMinted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courze_certificates_minted_total",
			Help: "Total number of completion certificates minted",
		}),
		DuplicateMints: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courze_certificates_duplicate_mints_total",
			Help: "Total number of mint calls resolved as idempotent no-ops",
		}),
	}
}

// IncrementMinted records a freshly minted certificate.
func (m *Metrics) IncrementMinted() {
	if m != nil {
		m.CertificatesMinted.Inc()
	}
}

// IncrementDuplicate records an idempotent duplicate mint.
func (m *Metrics) IncrementDuplicate() {
	if m != nil {
		m.DuplicateMints.Inc()
	}
}

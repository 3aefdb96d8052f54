package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the course registry.
type Metrics struct {
	CoursesUploaded   prometheus.Counter
	DuplicateUploads  prometheus.Counter
	CourseCacheChecks *prometheus.CounterVec
}

// New creates a Metrics instance with all course registry metrics registered.
func New() *Metrics {
	return &Metrics{
		CoursesUploaded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courze_courses_uploaded_total",
			Help: "Total number of courses added to the catalog",
		}),
		DuplicateUploads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courze_courses_duplicate_uploads_total",
			Help: "Total number of uploads rejected because the course id already exists",
		}),
		CourseCacheChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "courze_course_cache_checks_total",
			Help: "Course cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss"
	}
}

// IncrementUploaded records a successful catalog insert.
func (m *Metrics) IncrementUploaded() {
	if m != nil {
		m.CoursesUploaded.Inc()
	}
}

// IncrementDuplicate records a rejected duplicate upload.
func (m *Metrics) IncrementDuplicate() {
	if m != nil {
		m.DuplicateUploads.Inc()
	}
}

// IncrementCacheCheck records a cache lookup outcome.
func (m *Metrics) IncrementCacheCheck(result string) {
	if m != nil {
		m.CourseCacheChecks.WithLabelValues(result).Inc()
	}
}

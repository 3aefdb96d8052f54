// Package httptransport assembles the HTTP surface: middleware stack, domain
// handler registration, health, and metrics. The operation contract lives in
// the domain handlers; this package only arranges it on a router.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courze/internal/certificate"
	"courze/internal/course"
	"courze/internal/enrollment"
	"courze/internal/platform/middleware"
)

// Deps are the wired services the router exposes.
type Deps struct {
	Courses      *course.Handler
	Enrollments  *enrollment.Handler
	Certificates *certificate.Handler
	Verifier     middleware.TokenVerifier
	Logger       *slog.Logger
	// Health reports readiness of backing resources; nil means always ready.
	Health func(r *http.Request) error
}

// NewRouter builds the full router.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientPlatform)

	r.Get("/healthz", healthHandler(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Every domain operation requires an authenticated principal.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Verifier, deps.Logger))
		deps.Courses.Register(r)
		deps.Enrollments.Register(r)
		deps.Certificates.Register(r)
	})

	return r
}

func healthHandler(health func(r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health(r); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// Package enrollment owns the per-(user, course) ledger: enrollment records,
// progress reports, and the proportional refund released for each report.
// This is the only component that mutates refund state, and it does so
// through the pure computation in the refund subpackage followed by an
// explicit store commit.
package enrollment

import (
	"log/slog"

	"courze/internal/enrollment/handler"
	"courze/internal/enrollment/service"
)

// Service exposes the enrollment ledger operations.
type Service = service.Service

// Handler wires HTTP endpoints to the ledger service.
type Handler = handler.Handler

// NewService constructs the enrollment ledger with its collaborators.
func NewService(records service.EnrollmentStore, courses service.CourseRegistry, issuer service.CertificateIssuer, opts ...service.Option) *Service {
	return service.New(records, courses, issuer, opts...)
}

// NewHandler constructs an HTTP handler for enrollment routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}

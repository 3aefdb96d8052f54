// Package certificate owns minted completion certificates. Certificates are
// minted by the enrollment ledger when a course completes, never directly by
// callers.
package certificate

import (
	"log/slog"

	"courze/internal/certificate/handler"
	"courze/internal/certificate/service"
)

// Service exposes certificate minting and lookup.
type Service = service.Service

// Handler wires HTTP endpoints to the certificate service.
type Handler = handler.Handler

// NewService constructs the certificate issuer service.
func NewService(certs service.CertificateStore, opts ...service.Option) *Service {
	return service.New(certs, opts...)
}

// NewHandler constructs an HTTP handler for certificate routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}

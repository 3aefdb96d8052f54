package service

import (
	"context"
	"errors"
	"log/slog"

	"courze/internal/certificate/metrics"
	"courze/internal/certificate/models"
	id "courze/pkg/domain"
	dErrors "courze/pkg/domain-errors"
	"courze/pkg/platform/sentinel"
	"courze/pkg/requestcontext"
)

// CertificateStore is the persistence surface the issuer needs.
type CertificateStore interface {
	CreateIfAbsent(ctx context.Context, cert *models.Certificate) error
	FindByID(ctx context.Context, certID id.CertificateID) (*models.Certificate, error)
	FindByEnrollment(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Certificate, error)
}

// Service mints and serves completion certificates.
type Service struct {
	certs   CertificateStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures optional service dependencies.
type Option func(s *Service)

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics injects issuer metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the certificate issuer service.
func New(certs CertificateStore, opts ...Option) *Service {
	s := &Service{certs: certs, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MintInput carries the completed enrollment's descriptive payload.
type MintInput struct {
	UserID      id.UserID
	CourseID    id.CourseID
	CourseTitle string
	Instructor  id.UserID
}

// Mint creates the certificate for a completed enrollment. Minting is
// idempotent: progress can be reported as 100 more than once, and every call
// after the first returns the already-minted certificate with created=false.
func (s *Service) Mint(ctx context.Context, in MintInput) (cert *models.Certificate, created bool, err error) {
	cert = models.NewCertificate(in.UserID, in.CourseID, in.CourseTitle, in.Instructor, requestcontext.Now(ctx))

	err = s.certs.CreateIfAbsent(ctx, cert)
	if err == nil {
		s.logger.InfoContext(ctx, "certificate minted",
			"request_id", requestcontext.RequestID(ctx),
			"certificate_id", cert.ID,
			"user_id", cert.UserID,
			"course_id", cert.CourseID,
		)
		s.metrics.IncrementMinted()
		return cert, true, nil
	}
	if !errors.Is(err, sentinel.ErrConflict) {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store certificate")
	}

	existing, err := s.certs.FindByEnrollment(ctx, in.UserID, in.CourseID)
	if err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load existing certificate")
	}
	s.metrics.IncrementDuplicate()
	return existing, false, nil
}

// Get returns the certificate payload for the given id.
func (s *Service) Get(ctx context.Context, certID id.CertificateID) (*models.Certificate, error) {
	cert, err := s.certs.FindByID(ctx, certID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "certificate %s not found", certID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate")
	}
	return cert, nil
}

// GetByEnrollment returns the certificate minted for a (user, course) pair.
func (s *Service) GetByEnrollment(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Certificate, error) {
	cert, err := s.certs.FindByEnrollment(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "no certificate for course %q", courseID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate")
	}
	return cert, nil
}

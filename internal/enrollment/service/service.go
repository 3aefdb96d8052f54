package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	certmodels "courze/internal/certificate/models"
	certservice "courze/internal/certificate/service"
	coursemodels "courze/internal/course/models"
	"courze/internal/enrollment/metrics"
	"courze/internal/enrollment/models"
	"courze/internal/enrollment/refund"
	"courze/internal/event"
	"courze/internal/payout"
	id "courze/pkg/domain"
	dErrors "courze/pkg/domain-errors"
	"courze/pkg/platform/sentinel"
	"courze/pkg/requestcontext"
)

// EnrollmentStore is the persistence surface the ledger needs.
type EnrollmentStore interface {
	Create(ctx context.Context, record *models.Record) error
	Find(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Record, error)
	Update(ctx context.Context, record *models.Record) error
}

// CourseRegistry is the read-only view of the catalog the ledger depends on.
type CourseRegistry interface {
	Get(ctx context.Context, courseID id.CourseID) (*coursemodels.Course, error)
}

// CertificateIssuer mints completion certificates.
type CertificateIssuer interface {
	Mint(ctx context.Context, in certservice.MintInput) (cert *certmodels.Certificate, created bool, err error)
}

// Service is the enrollment ledger. It owns per-(user, course) records and
// drives the compute-then-commit refund pipeline: read record and course
// terms, delegate the transition to the pure refund computation, commit the
// new record, then hand side effects (certificate mint, value transfer,
// events) off to collaborators.
type Service struct {
	records    EnrollmentStore
	courses    CourseRegistry
	issuer     CertificateIssuer
	transferer payout.Transferer
	retries    payout.Queue
	publisher  event.Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer

	// locks serializes updates per (user, course) key so concurrent progress
	// reports cannot interleave between compute and commit.
	locks keyedMutex
}

// Option configures optional service dependencies.
type Option func(s *Service)

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics injects ledger metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTransferer injects the value-transfer collaborator and its retry queue.
func WithTransferer(t payout.Transferer, retries payout.Queue) Option {
	return func(s *Service) {
		s.transferer = t
		s.retries = retries
	}
}

// WithPublisher injects the ledger event publisher.
func WithPublisher(p event.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// New constructs the enrollment ledger service.
func New(records EnrollmentStore, courses CourseRegistry, issuer CertificateIssuer, opts ...Option) *Service {
	s := &Service{
		records: records,
		courses: courses,
		issuer:  issuer,
		logger:  slog.Default(),
		tracer:  otel.Tracer("courze/enrollment"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enroll creates the ledger entry for a student starting a course.
func (s *Service) Enroll(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Record, error) {
	if _, err := s.courses.Get(ctx, courseID); err != nil {
		return nil, err
	}

	record := models.NewRecord(userID, courseID, requestcontext.Now(ctx))
	if err := s.records.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "already enrolled in course %q", courseID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create enrollment")
	}

	s.logger.InfoContext(ctx, "enrolled",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
		"course_id", courseID,
	)
	s.metrics.IncrementEnrollments()
	s.emit(ctx, event.Event{
		Type:     event.TypeEnrolled,
		UserID:   userID,
		CourseID: courseID,
	})
	return record, nil
}

// ProgressResult is the outcome of a progress report.
type ProgressResult struct {
	Record *models.Record
	// RefundDelta is the incremental amount released by this report.
	RefundDelta float64
	Completed   bool
	// Certificate is set when this report completed the course; on repeat
	// completions it is the previously minted certificate.
	Certificate *certmodels.Certificate
}

// RecordProgress applies a progress report to the ledger.
//
// The commit order is deliberate: the record (progress + refundReceived) is
// persisted before the certificate mint, the value transfer, and the event
// emission. A failure in any of those later steps leaves the ledger correct;
// the transfer is re-queued and the amount owed stays re-derivable from
// progress, so it can never be double-paid.
func (s *Service) RecordProgress(ctx context.Context, userID id.UserID, courseID id.CourseID, newProgress float64) (*ProgressResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "enrollment.RecordProgress",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("course.id", courseID.String()),
			attribute.Float64("progress.reported", newProgress),
		),
	)
	defer span.End()

	if newProgress < 0 || newProgress > 100 {
		s.metrics.IncrementProgressReports("rejected")
		return nil, dErrors.New(dErrors.CodeValidation, "progress must be between 0 and 100")
	}

	unlock := s.locks.lock(userID, courseID)
	defer unlock()

	record, err := s.records.Find(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementProgressReports("rejected")
			return nil, dErrors.Newf(dErrors.CodeNotFound, "not enrolled in course %q", courseID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load enrollment")
	}

	// Courses are immutable, but the record outlives any single process:
	// check the course defensively rather than trusting the join forever.
	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	outcome := refund.Compute(
		refund.Terms{Price: course.Price, Threshold: course.RefundThreshold},
		record.RefundReceived,
		newProgress,
	)

	record.Progress = newProgress
	record.RefundReceived = outcome.RefundReceived
	record.UpdatedAt = requestcontext.Now(ctx)
	if err := s.records.Update(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit progress")
	}

	result := &ProgressResult{
		Record:      record,
		RefundDelta: outcome.Delta,
		Completed:   outcome.Completed,
	}

	if outcome.Completed {
		cert, created, err := s.issuer.Mint(ctx, certservice.MintInput{
			UserID:      userID,
			CourseID:    courseID,
			CourseTitle: course.Title,
			Instructor:  course.Instructor,
		})
		if err != nil {
			// The ledger commit stands; the next completion report retries
			// the mint.
			s.logger.ErrorContext(ctx, "certificate mint failed",
				"request_id", requestcontext.RequestID(ctx),
				"user_id", userID,
				"course_id", courseID,
				"error", err,
			)
		} else {
			result.Certificate = cert
			if created {
				s.metrics.IncrementCompletions()
				s.emit(ctx, event.Event{
					Type:          event.TypeCertificateMinted,
					UserID:        userID,
					CourseID:      courseID,
					CertificateID: cert.ID.String(),
				})
			}
		}
	}

	if outcome.Delta > 0 {
		s.release(ctx, userID, courseID, outcome.Delta, newProgress)
	}

	s.logger.InfoContext(ctx, "progress recorded",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
		"course_id", courseID,
		"progress", newProgress,
		"refund_delta", outcome.Delta,
		"refund_received", outcome.RefundReceived,
		"completed", outcome.Completed,
	)
	s.metrics.IncrementProgressReports("accepted")
	s.metrics.ObserveRefundDelta(outcome.Delta)
	s.metrics.ObserveRecordProgressLatency(time.Since(start))
	span.SetAttributes(
		attribute.Float64("refund.delta", outcome.Delta),
		attribute.Bool("completed", outcome.Completed),
	)
	return result, nil
}

// GetProgress returns the ledger entry for a (user, course) pair.
func (s *Service) GetProgress(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Record, error) {
	record, err := s.records.Find(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "not enrolled in course %q", courseID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load enrollment")
	}
	return record, nil
}

// release hands the refund delta to the value-transfer collaborator. The
// accounting has already been committed, so a transfer failure is queued for
// retry rather than reverted.
func (s *Service) release(ctx context.Context, userID id.UserID, courseID id.CourseID, delta, progress float64) {
	s.emit(ctx, event.Event{
		Type:     event.TypeRefundReleased,
		UserID:   userID,
		CourseID: courseID,
		Amount:   delta,
		Progress: progress,
	})

	if s.transferer == nil {
		return
	}
	transfer := payout.Transfer{
		UserID:   userID,
		CourseID: courseID,
		Amount:   delta,
		QueuedAt: requestcontext.Now(ctx),
	}
	if err := s.transferer.Transfer(ctx, transfer); err != nil {
		s.logger.WarnContext(ctx, "refund transfer failed, queueing for retry",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"course_id", courseID,
			"amount", delta,
			"error", err,
		)
		if s.retries != nil {
			if enqErr := s.retries.Enqueue(ctx, transfer); enqErr != nil {
				s.logger.ErrorContext(ctx, "failed to queue refund transfer",
					"user_id", userID,
					"course_id", courseID,
					"amount", delta,
					"error", enqErr,
				)
			}
		}
	}
}

func (s *Service) emit(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Emit(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "event publish failed",
			"event_type", e.Type,
			"error", err,
		)
	}
}

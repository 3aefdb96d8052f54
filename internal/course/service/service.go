package service

import (
	"context"
	"errors"
	"log/slog"

	"courze/internal/course/metrics"
	"courze/internal/course/models"
	"courze/internal/event"
	id "courze/pkg/domain"
	dErrors "courze/pkg/domain-errors"
	"courze/pkg/platform/sentinel"
	"courze/pkg/requestcontext"
)

// CourseStore is the persistence surface the registry needs. Courses are
// immutable, so there is no update or delete.
type CourseStore interface {
	CreateIfAbsent(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, courseID id.CourseID) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
}

// Service owns the course catalog. Enrollment and refund logic read course
// terms through it but never mutate them.
type Service struct {
	courses   CourseStore
	publisher event.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Option configures optional service dependencies.
type Option func(s *Service)

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics injects registry metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithPublisher injects the ledger event publisher.
func WithPublisher(p event.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// New constructs the course registry service.
func New(courses CourseStore, opts ...Option) *Service {
	s := &Service{courses: courses, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UploadInput carries the instructor-supplied course terms.
type UploadInput struct {
	CourseID        id.CourseID
	Instructor      id.UserID
	Title           string
	Price           int64
	RefundThreshold float64
}

// Upload adds a course to the catalog. It fails with a conflict error when
// the course id is already taken; the catalog is append-only.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*models.Course, error) {
	course, err := models.NewCourse(in.CourseID, in.Instructor, in.Title, in.Price, in.RefundThreshold, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.courses.CreateIfAbsent(ctx, course); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.IncrementDuplicate()
			return nil, dErrors.Newf(dErrors.CodeConflict, "course %q already exists", course.ID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store course")
	}

	s.logger.InfoContext(ctx, "course uploaded",
		"request_id", requestcontext.RequestID(ctx),
		"course_id", course.ID,
		"instructor", course.Instructor,
		"price", course.Price,
		"refund_threshold", course.RefundThreshold,
	)
	s.metrics.IncrementUploaded()
	if s.publisher != nil {
		if err := s.publisher.Emit(ctx, event.Event{
			Type:     event.TypeCourseUploaded,
			UserID:   course.Instructor,
			CourseID: course.ID,
		}); err != nil {
			s.logger.WarnContext(ctx, "event publish failed",
				"event_type", event.TypeCourseUploaded,
				"error", err,
			)
		}
	}
	return course, nil
}

// Get returns the course terms for the given id.
func (s *Service) Get(ctx context.Context, courseID id.CourseID) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "course %q not found", courseID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load course")
	}
	return course, nil
}

// List returns the full catalog ordered by course id.
func (s *Service) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list courses")
	}
	return courses, nil
}

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"courze/internal/course/models"
	"courze/internal/course/service"
	id "courze/pkg/domain"
	dErrors "courze/pkg/domain-errors"
	"courze/pkg/platform/httputil"
	"courze/pkg/requestcontext"
)

// Service defines the course registry operations the handler exposes.
type Service interface {
	Upload(ctx context.Context, in service.UploadInput) (*models.Course, error)
	Get(ctx context.Context, courseID id.CourseID) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
}

// Handler wires course registry endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a course handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts course endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/courses", h.HandleUpload)
	r.Get("/courses", h.HandleList)
	r.Get("/courses/{courseID}", h.HandleGet)
}

// HandleUpload handles POST /courses.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	instructor := requestcontext.UserID(ctx)
	if instructor == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[*UploadCourseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	course, err := h.service.Upload(ctx, service.UploadInput{
		CourseID:        req.ParsedID(),
		Instructor:      instructor,
		Title:           req.Title,
		Price:           req.Price,
		RefundThreshold: req.RefundThreshold,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "course upload rejected",
			"request_id", requestID,
			"course_id", req.ID,
			"instructor", instructor,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, course)
}

// HandleGet handles GET /courses/{courseID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	courseID, err := id.ParseCourseID(chi.URLParam(r, "courseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	course, err := h.service.Get(ctx, courseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, course)
}

// HandleList handles GET /courses.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	httputil.WriteJSON(w, http.StatusOK, courses)
}

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"courze/internal/enrollment/models"
	"courze/internal/enrollment/service"
	id "courze/pkg/domain"
	dErrors "courze/pkg/domain-errors"
	"courze/pkg/platform/httputil"
	"courze/pkg/requestcontext"
)

// Service defines the ledger operations the handler exposes.
type Service interface {
	Enroll(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Record, error)
	RecordProgress(ctx context.Context, userID id.UserID, courseID id.CourseID, newProgress float64) (*service.ProgressResult, error)
	GetProgress(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Record, error)
}

// Handler wires enrollment ledger endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an enrollment handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts enrollment endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/enrollments", h.HandleEnroll)
	r.Post("/enrollments/{courseID}/progress", h.HandleRecordProgress)
	r.Get("/enrollments/{courseID}", h.HandleGetProgress)
}

// HandleEnroll handles POST /enrollments.
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[*EnrollRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.Enroll(ctx, userID, req.ParsedCourseID())
	if err != nil {
		h.logger.WarnContext(ctx, "enrollment rejected",
			"request_id", requestID,
			"user_id", userID,
			"course_id", req.CourseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromRecord(record))
}

// HandleRecordProgress handles POST /enrollments/{courseID}/progress.
func (h *Handler) HandleRecordProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	courseID, err := id.ParseCourseID(chi.URLParam(r, "courseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[*ProgressRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.RecordProgress(ctx, userID, courseID, req.Progress)
	if err != nil {
		h.logger.WarnContext(ctx, "progress report rejected",
			"request_id", requestID,
			"user_id", userID,
			"course_id", courseID,
			"progress", req.Progress,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleGetProgress handles GET /enrollments/{courseID}.
func (h *Handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	courseID, err := id.ParseCourseID(chi.URLParam(r, "courseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.GetProgress(ctx, userID, courseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}

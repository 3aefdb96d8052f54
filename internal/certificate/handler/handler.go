package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"courze/internal/certificate/models"
	id "courze/pkg/domain"
	dErrors "courze/pkg/domain-errors"
	"courze/pkg/platform/httputil"
	"courze/pkg/requestcontext"
)

// Service defines the issuer operations the handler exposes. Minting is not
// on the HTTP surface: only a completed enrollment mints, via the ledger.
type Service interface {
	Get(ctx context.Context, certID id.CertificateID) (*models.Certificate, error)
	GetByEnrollment(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Certificate, error)
}

// Handler wires certificate endpoints to the issuer service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a certificate handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts certificate endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/certificates/{certificateID}", h.HandleGet)
	r.Get("/courses/{courseID}/certificate", h.HandleGetOwn)
}

// HandleGet handles GET /certificates/{certificateID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	certID, err := id.ParseCertificateID(chi.URLParam(r, "certificateID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cert, err := h.service.Get(r.Context(), certID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cert)
}

// HandleGetOwn handles GET /courses/{courseID}/certificate for the
// authenticated student.
func (h *Handler) HandleGetOwn(w http.ResponseWriter, r *http.Request) {
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

	cert, err := h.service.GetByEnrollment(ctx, userID, courseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cert)
}

package httptransport

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courze/internal/certificate"
	certstore "courze/internal/certificate/store"
	"courze/internal/course"
	coursestore "courze/internal/course/store"
	"courze/internal/enrollment"
	enrollstore "courze/internal/enrollment/store"
	"courze/internal/jwtauth"
	id "courze/pkg/domain"
)

const signingKey = "test-signing-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.Default()

	courseSvc := course.NewService(coursestore.NewInMemory())
	certSvc := certificate.NewService(certstore.NewInMemory())
	enrollSvc := enrollment.NewService(enrollstore.NewInMemory(), courseSvc, certSvc)

	return NewRouter(Deps{
		Courses:      course.NewHandler(courseSvc, logger),
		Enrollments:  enrollment.NewHandler(enrollSvc, logger),
		Certificates: certificate.NewHandler(certSvc, logger),
		Verifier:     jwtauth.New(signingKey),
		Logger:       logger,
	})
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwtauth.New(signingKey).Issue(id.UserID(userID), time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(router http.Handler, method, path, auth string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetricsAreOpen(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /healthz, got %d", rec.Code)
	}

	rec = doJSON(router, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
}

func TestDomainRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/courses", "/enrollments/go-101", "/certificates/invalid"} {
		rec := doJSON(router, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 from %s without token, got %d", path, rec.Code)
		}
	}
}

// TestFullCourseLifecycle walks the whole surface: upload, enroll, partial
// progress, completion, certificate lookup by both routes.
func TestFullCourseLifecycle(t *testing.T) {
	router := newTestRouter(t)
	instructor := bearerFor(t, "instructor-1")
	student := bearerFor(t, "alice")

	rec := doJSON(router, http.MethodPost, "/courses", instructor, map[string]any{
		"id":               "go-advanced",
		"title":            "Advanced Go",
		"price":            200,
		"refund_threshold": 80,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 uploading course, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(router, http.MethodPost, "/enrollments", student, map[string]string{"course_id": "go-advanced"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 enrolling, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(router, http.MethodPost, "/enrollments/go-advanced/progress", student, map[string]float64{"progress": 40})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 reporting progress, got %d: %s", rec.Code, rec.Body.String())
	}
	var partial struct {
		RefundDelta    float64 `json:"refund_delta"`
		RefundReceived float64 `json:"refund_received"`
		Completed      bool    `json:"completed"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&partial); err != nil {
		t.Fatalf("failed to decode progress response: %v", err)
	}
	if partial.RefundDelta != 100 || partial.RefundReceived != 100 || partial.Completed {
		t.Fatalf("expected half of a 200-unit price at 40%% progress, got %+v", partial)
	}

	rec = doJSON(router, http.MethodPost, "/enrollments/go-advanced/progress", student, map[string]float64{"progress": 100})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 completing, got %d: %s", rec.Code, rec.Body.String())
	}
	var completed struct {
		RefundReceived float64 `json:"refund_received"`
		Completed      bool    `json:"completed"`
		CertificateID  string  `json:"certificate_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&completed); err != nil {
		t.Fatalf("failed to decode completion response: %v", err)
	}
	if !completed.Completed || completed.RefundReceived != 200 || completed.CertificateID == "" {
		t.Fatalf("unexpected completion state: %+v", completed)
	}

	rec = doJSON(router, http.MethodGet, "/certificates/"+completed.CertificateID, student, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching certificate, got %d", rec.Code)
	}

	rec = doJSON(router, http.MethodGet, "/courses/go-advanced/certificate", student, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching own certificate, got %d", rec.Code)
	}
	var cert struct {
		ID          string `json:"id"`
		UserID      string `json:"user_id"`
		CourseTitle string `json:"course_title"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&cert); err != nil {
		t.Fatalf("failed to decode certificate: %v", err)
	}
	if cert.ID != completed.CertificateID || cert.UserID != "alice" || cert.CourseTitle != "Advanced Go" {
		t.Fatalf("unexpected certificate: %+v", cert)
	}

	// Another student has no certificate for this course.
	other := bearerFor(t, "bob")
	rec = doJSON(router, http.MethodGet, "/courses/go-advanced/certificate", other, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for uncertified student, got %d", rec.Code)
	}
}

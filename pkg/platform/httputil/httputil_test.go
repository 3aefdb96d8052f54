package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "courze/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("validation error includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeValidation, "progress must be between 0 and 100"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error_description"] != "progress must be between 0 and 100" {
			t.Fatalf("expected description, got %q", body["error_description"])
		}
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeConflict, "already enrolled"))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeNotFound, "course not found"))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})
}

type fakeRequest struct {
	Name string `json:"name"`
}

func (r *fakeRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.Default()

	decode := func(body string) (*fakeRequest, bool, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req, ok := DecodeAndPrepare[*fakeRequest](w, r, logger, context.Background(), "req-1")
		return req, ok, w
	}

	t.Run("decodes and validates", func(t *testing.T) {
		req, ok, _ := decode(`{"name":"alice"}`)
		if !ok || req.Name != "alice" {
			t.Fatalf("expected decoded request, got ok=%v req=%+v", ok, req)
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, ok, w := decode(`{not json`)
		if ok || w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed body, got ok=%v code=%d", ok, w.Code)
		}
	})

	t.Run("rejects a literal null body", func(t *testing.T) {
		_, ok, w := decode(`null`)
		if ok || w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for null body, got ok=%v code=%d", ok, w.Code)
		}
	})

	t.Run("surfaces validation failures", func(t *testing.T) {
		_, ok, w := decode(`{"name":""}`)
		if ok || w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid request, got ok=%v code=%d", ok, w.Code)
		}
	})
}

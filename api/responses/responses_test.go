package responses

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/types"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body["data"].(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body["data"])
	}
	if _, ok := body["message"]; ok {
		t.Fatalf("message should be omitted when empty")
	}
}

func TestWriteMessageIncludesMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteMessage(w, http.StatusCreated, map[string]int{"id": 1}, "Product created successfully")

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Product created successfully" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestWriteErrorValidationIncludesFieldErrors(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"slug": "is invalid"})
	WriteError(w, r, nil, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Status != http.StatusBadRequest || body.Error != "Validation Error" {
		t.Fatalf("unexpected envelope %+v", body)
	}
	if body.FieldErrors["slug"] != "is invalid" {
		t.Fatalf("expected field errors in payload, got %+v", body.FieldErrors)
	}
	if body.Timestamp.IsZero() {
		t.Fatalf("expected timestamp")
	}
}

func TestWriteErrorUsesAuthEnvelopeFor401And403(t *testing.T) {
	for _, tc := range []struct {
		code   pkgerrors.Code
		status int
		title  string
	}{
		{pkgerrors.CodeUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{pkgerrors.CodeForbidden, http.StatusForbidden, "Forbidden"},
	} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/admin/categories", nil)
		WriteError(w, r, nil, pkgerrors.New(tc.code, "Token expired"))

		if w.Code != tc.status {
			t.Fatalf("expected %d got %d", tc.status, w.Code)
		}
		var body types.AuthErrorEnvelope
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Error != tc.title || body.Message != "Token expired" || body.Path != "/api/admin/categories" {
			t.Fatalf("unexpected auth envelope %+v", body)
		}
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, nil, nil, errors.New("pq: connection refused to 10.0.0.3"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal message should be sanitized, got %q", body.Message)
	}
	if body.Details != nil || body.FieldErrors != nil {
		t.Fatalf("details should be omitted for internal errors")
	}
}

package validators

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/go-chi/chi/v5"
)

type slugPayload struct {
	Name string `json:"name" validate:"required,min=3"`
	Slug string `json:"slug" validate:"required,slug"`
}

func TestDecodeJSONBodyValidatesSlug(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Rosas","slug":"Rosa Roja"}`))
	var dest slugPayload
	err := DecodeJSONBody(req, &dest)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	details := pkgerrors.As(err).Details().(map[string]string)
	if _, ok := details["slug"]; !ok {
		t.Fatalf("expected slug field error, got %v", details)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Rosas","slug":"rosa-roja-12"}`))
	if err := DecodeJSONBody(req, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Rosas","slug":"rosas","extra":1}`))
	var dest slugPayload
	if err := DecodeJSONBody(req, &dest); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=2&size=500&categoryId=4&featured=true", nil)
	if _, err := ParsePage(req); err == nil {
		t.Fatal("expected size out of range")
	}

	req = httptest.NewRequest(http.MethodGet, "/?page=2&size=10&categoryId=4&featured=true", nil)
	params, err := ParsePage(req)
	if err != nil || params.Page != 2 || params.Size != 10 {
		t.Fatalf("unexpected params %+v err %v", params, err)
	}
	id, err := ParseQueryID(req, "categoryId")
	if err != nil || id == nil || *id != 4 {
		t.Fatalf("unexpected id %v err %v", id, err)
	}
	missing, err := ParseQueryID(req, "subcategoryId")
	if err != nil || missing != nil {
		t.Fatalf("expected nil id, got %v err %v", missing, err)
	}
	featured, err := ParseQueryBool(req, "featured")
	if err != nil || featured == nil || !*featured {
		t.Fatalf("unexpected bool %v err %v", featured, err)
	}

	bad := httptest.NewRequest(http.MethodGet, "/?categoryId=abc", nil)
	if _, err := ParseQueryID(bad, "categoryId"); err == nil {
		t.Fatal("expected invalid id error")
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products/7", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "7")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	id, err := PathID(req, "id")
	if err != nil || id != 7 {
		t.Fatalf("unexpected id %d err %v", id, err)
	}

	rctx.URLParams = chi.RouteParams{}
	rctx.URLParams.Add("id", "0")
	if _, err := PathID(req, "id"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func multipartRequest(t *testing.T, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "ramo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestReadImageFormSniffsContent(t *testing.T) {
	allowed := []string{"image/jpeg", "image/png", "image/webp"}
	req := multipartRequest(t, pngHeader, map[string]string{"isPrimary": "true", "altText": " Ramo "})
	form, err := ReadImageForm(req, "file", 1<<20, allowed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.File.ContentType != "image/png" {
		t.Fatalf("expected image/png, got %q", form.File.ContentType)
	}
	if !form.IsPrimary || form.Seasonal {
		t.Fatalf("unexpected flags %+v", form)
	}
	if form.AltText == nil || *form.AltText != "Ramo" {
		t.Fatalf("unexpected alt text %v", form.AltText)
	}

	req = multipartRequest(t, []byte("GIF89a not really an image"), nil)
	if _, err := ReadImageForm(req, "file", 1<<20, allowed); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for gif, got %v", err)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  rosas rojas  ", 5); got != "rosas" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString("Floristería", 9); got != "Florister" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString("Floristería", 10); got != "Floristerí" {
		t.Fatalf("multi-byte rune split: %q", got)
	}
	if got := SanitizeString(" girasol ", 0); got != "girasol" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestReadImageFormCapsAltText(t *testing.T) {
	allowed := []string{"image/png"}
	long := strings.Repeat("í", 300)
	form, err := ReadImageForm(multipartRequest(t, pngHeader, map[string]string{"altText": long}), "file", 1<<20, allowed)
	if err != nil {
		t.Fatalf("ReadImageForm returned error: %v", err)
	}
	if form.AltText == nil || *form.AltText != strings.Repeat("í", 255) {
		t.Fatalf("expected alt text capped at 255 runes")
	}
}

package validators

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/storage"
	"github.com/gabriel-vasile/mimetype"
)

const (
	multipartOverhead = 1 << 20
	maxAltTextRunes   = 255
)

// ImageForm is a decoded image upload with its accompanying form fields.
type ImageForm struct {
	File      storage.File
	AltText   *string
	IsPrimary bool
	Seasonal  bool
}

// ReadImageForm parses a multipart form holding one image under field. The content
// type is sniffed from the bytes and must be one of allowed.
func ReadImageForm(r *http.Request, field string, maxBytes int64, allowed []string) (ImageForm, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ImageForm{}, sizeError(maxBytes)
		}
		return ImageForm{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid multipart form").
			WithDetails(map[string]string{field: "a multipart file is required"})
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return ImageForm{}, pkgerrors.New(pkgerrors.CodeValidation, "File is required").
			WithDetails(map[string]string{field: "is required"})
	}
	defer file.Close()

	if header.Size <= 0 {
		return ImageForm{}, pkgerrors.New(pkgerrors.CodeValidation, "File is empty").
			WithDetails(map[string]string{field: "File is empty"})
	}
	if header.Size > maxBytes {
		return ImageForm{}, sizeError(maxBytes)
	}

	body, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return ImageForm{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Unable to read file")
	}
	contentType := strings.ToLower(mimetype.Detect(body).String())
	if !isAllowed(contentType, allowed) {
		msg := "Only JPG, PNG and WEBP images are allowed"
		return ImageForm{}, pkgerrors.New(pkgerrors.CodeValidation, msg).
			WithDetails(map[string]string{field: msg})
	}

	form := ImageForm{
		File: storage.File{
			OriginalName: header.Filename,
			ContentType:  contentType,
			Size:         int64(len(body)),
			Body:         bytes.NewReader(body),
		},
		IsPrimary: formBool(r, "isPrimary"),
		Seasonal:  formBool(r, "seasonal"),
	}
	if alt := SanitizeString(r.FormValue("altText"), maxAltTextRunes); alt != "" {
		form.AltText = &alt
	}
	return form, nil
}

func isAllowed(contentType string, allowed []string) bool {
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, contentType) {
			return true
		}
	}
	return false
}

func formBool(r *http.Request, key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(r.FormValue(key)))
	return err == nil && value
}

func sizeError(maxBytes int64) error {
	msg := fmt.Sprintf("File size exceeds the %d MB limit", maxBytes>>20)
	return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]string{"file": msg})
}

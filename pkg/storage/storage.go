package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidObject is returned for empty or path-escaping object names.
var ErrInvalidObject = errors.New("invalid storage object")

// File is an image handed to a Provider.
type File struct {
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

// UploadResult describes a stored object. Thumbnail and Medium fall back to Original
// when the backend does not produce resized renditions.
type UploadResult struct {
	PublicID  string
	Original  string
	Thumbnail string
	Medium    string
}

// Provider is the image storage contract consumed by the catalog.
type Provider interface {
	Upload(ctx context.Context, file File, folder string) (UploadResult, error)
	Delete(ctx context.Context, publicID string) error
	Ping(ctx context.Context) error
}

var extensionsByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ObjectName builds "<folder>/<uuid><ext>", deriving the extension from the content type
// and falling back to the original file name.
func ObjectName(folder, originalName, contentType string) (string, error) {
	cleanFolder, err := CleanKey(folder)
	if err != nil {
		return "", err
	}
	ext := extensionsByType[strings.ToLower(contentType)]
	if ext == "" {
		ext = strings.ToLower(path.Ext(originalName))
	}
	return path.Join(cleanFolder, uuid.NewString()+ext), nil
}

// CleanKey normalizes a slash separated key and rejects traversal outside the root.
func CleanKey(key string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(key), "/")
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidObject)
	}
	cleaned := path.Clean(trimmed)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidObject, key)
	}
	return cleaned, nil
}

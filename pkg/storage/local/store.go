package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Emman-24/backendFlorist/pkg/logger"
	"github.com/Emman-24/backendFlorist/pkg/storage"
)

// PublicPrefix is the URL prefix the API serves stored files under.
const PublicPrefix = "images"

// Store keeps images on local disk below root.
type Store struct {
	root    string
	baseURL string
	logg    *logger.Logger
}

// New ensures root exists. baseURL is the public backend URL used to build image links.
func New(root, baseURL string, logg *logger.Logger) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("local storage path is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %q: %w", root, err)
	}
	return &Store{root: root, baseURL: strings.TrimRight(baseURL, "/"), logg: logg}, nil
}

// Root returns the directory served under /images.
func (s *Store) Root() string {
	return s.root
}

// Upload writes the file below root/folder. The public id is the "images/..." path.
func (s *Store) Upload(ctx context.Context, file storage.File, folder string) (storage.UploadResult, error) {
	if file.Body == nil {
		return storage.UploadResult{}, errors.New("file body is required")
	}
	object, err := storage.ObjectName(folder, file.OriginalName, file.ContentType)
	if err != nil {
		return storage.UploadResult{}, err
	}

	target := filepath.Join(s.root, filepath.FromSlash(object))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return storage.UploadResult{}, fmt.Errorf("create folder: %w", err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return storage.UploadResult{}, fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, file.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return storage.UploadResult{}, fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		return storage.UploadResult{}, fmt.Errorf("close file: %w", err)
	}

	publicID := path.Join(PublicPrefix, object)
	url := s.baseURL + "/" + publicID
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "public_id", publicID), "storage.uploaded")
	}
	return storage.UploadResult{
		PublicID:  publicID,
		Original:  url,
		Thumbnail: url,
		Medium:    url,
	}, nil
}

// Delete removes the file for publicID. Missing files are not an error.
func (s *Store) Delete(ctx context.Context, publicID string) error {
	key, err := storage.CleanKey(strings.TrimPrefix(strings.TrimLeft(publicID, "/"), PublicPrefix+"/"))
	if err != nil {
		return err
	}
	target := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// Ping verifies the root directory is still reachable.
func (s *Store) Ping(context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("storage root %q is not a directory", s.root)
	}
	return nil
}

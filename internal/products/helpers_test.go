package products

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Emman-24/backendFlorist/internal/seo"
	"github.com/Emman-24/backendFlorist/pkg/db/dbtest"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/logger"
	"github.com/Emman-24/backendFlorist/pkg/storage"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStorage struct {
	mu        sync.Mutex
	folders   []string
	deleted   []string
	deleteErr error
	n         int
}

func (f *fakeStorage) Upload(_ context.Context, file storage.File, folder string) (storage.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file.Body == nil {
		return storage.UploadResult{}, errors.New("missing body")
	}
	f.n++
	f.folders = append(f.folders, folder)
	id := fmt.Sprintf("images/%s/img-%d.jpg", folder, f.n)
	url := "https://backend.floristeriaakasia.com.co/" + id
	return storage.UploadResult{PublicID: id, Original: url, Thumbnail: url, Medium: url}, nil
}

func (f *fakeStorage) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	return f.deleteErr
}

func (f *fakeStorage) Ping(context.Context) error { return nil }

type fixture struct {
	svc      Service
	conn     *gorm.DB
	store    *fakeStorage
	logs     *bytes.Buffer
	flores   *models.Category
	arreglos *models.Category
	rosas    *models.SubCategory
	cajas    *models.SubCategory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client, conn := dbtest.Client(t)
	seoService, err := seo.NewService(seo.ServiceParams{
		DB:         client,
		BaseURL:    "https://www.floristeriaakasia.com.co",
		BackendURL: "https://backend.floristeriaakasia.com.co",
	})
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	store := &fakeStorage{}
	svc, err := NewService(ServiceParams{
		DB:             client,
		SEO:            seoService,
		Storage:        store,
		MaxUploadBytes: 1 << 20,
		Logger:         logger.New(logger.Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: logs}),
	})
	require.NoError(t, err)

	f := &fixture{svc: svc, conn: conn, store: store, logs: logs}
	f.flores = &models.Category{Text: "Flores", Route: "flores", Status: true}
	f.arreglos = &models.Category{Text: "Arreglos", Route: "arreglos", Status: true}
	require.NoError(t, conn.Create(f.flores).Error)
	require.NoError(t, conn.Create(f.arreglos).Error)
	f.rosas = &models.SubCategory{Text: "Rosas", Route: "rosas", Status: true, CategoryID: f.flores.ID}
	f.cajas = &models.SubCategory{Text: "Cajas", Route: "cajas", Status: true, CategoryID: f.arreglos.ID}
	require.NoError(t, conn.Create(f.rosas).Error)
	require.NoError(t, conn.Create(f.cajas).Error)
	return f
}

func (f *fixture) request(slug string) ProductRequest {
	return ProductRequest{
		Title:         "Ramo " + strings.ReplaceAll(slug, "-", " "),
		Slug:          slug,
		Price:         decimal.RequireFromString("85000"),
		CategoryID:    f.flores.ID,
		SubCategoryID: f.rosas.ID,
	}
}

func (f *fixture) create(t *testing.T, slug string) *ProductDTO {
	t.Helper()
	created, err := f.svc.Create(context.Background(), f.request(slug))
	require.NoError(t, err)
	return created
}

func jpegUpload(size int64, primary bool) ImageUpload {
	return ImageUpload{
		File: storage.File{
			OriginalName: "ramo.jpg",
			ContentType:  "image/jpeg",
			Size:         size,
			Body:         strings.NewReader(strings.Repeat("x", int(size))),
		},
		IsPrimary: primary,
	}
}

func boolPtr(v bool) *bool    { return &v }
func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

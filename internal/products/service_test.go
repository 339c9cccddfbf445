package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRegistersURLAndMetadata(t *testing.T) {
	f := newFixture(t)
	amor := &models.Tag{Text: "Amor", Route: "amor", Status: true}
	require.NoError(t, f.conn.Create(amor).Error)

	req := f.request("rosa-roja")
	req.Slug = " Rosa-Roja "
	req.TagIDs = []int64{amor.ID, 999}
	created, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "rosa-roja", created.Slug)
	assert.True(t, created.Status)
	assert.Equal(t, enums.StockStatusAvailable, created.StockStatus)
	assert.Equal(t, "/products/flores/rosas/rosa-roja", created.FullPath)
	assert.Contains(t, created.MetaTitle, "Ramo rosa roja")
	require.Len(t, created.Tags, 1)
	assert.Equal(t, "amor", created.Tags[0].Route)
	assert.Equal(t, "Rosas", created.SubCategory.Name)

	var url models.SEOURL
	require.NoError(t, f.conn.Where("entity_type = ? AND entity_id = ?", enums.SEOEntityProduct, created.ID).First(&url).Error)
	assert.Equal(t, "https://www.floristeriaakasia.com.co/products/flores/rosas/rosa-roja", url.CanonicalURL)

	var meta models.SEOMetadata
	require.NoError(t, f.conn.Where("entity_type = ? AND entity_id = ?", enums.SEOEntityProduct, created.ID).First(&meta).Error)
	assert.False(t, meta.IsCustom)
	assert.Contains(t, meta.MetaTitle, "Ramo rosa roja")
}

func TestCreateValidatesPlacementPriceAndSlug(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	mismatched := f.request("ramo-mixto")
	mismatched.SubCategoryID = f.cajas.ID
	_, err := f.svc.Create(ctx, mismatched)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "subcategoryId")

	missing := f.request("ramo-mixto")
	missing.CategoryID = 999
	_, err = f.svc.Create(ctx, missing)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	free := f.request("ramo-mixto")
	free.Price = decimal.Zero
	_, err = f.svc.Create(ctx, free)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	f.create(t, "ramo-mixto")
	_, err = f.svc.Create(ctx, f.request("ramo-mixto"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	var count int64
	require.NoError(t, f.conn.Model(&models.SEOURL{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateMovesCanonicalPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, "rosa-roja")

	req := f.request("caja-de-rosas")
	req.CategoryID = f.arreglos.ID
	req.SubCategoryID = f.cajas.ID
	req.StockStatus = enums.StockStatusSeasonal
	updated, err := f.svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "/products/arreglos/cajas/caja-de-rosas", updated.FullPath)
	assert.Equal(t, enums.StockStatusSeasonal, updated.StockStatus)

	var url models.SEOURL
	require.NoError(t, f.conn.Where("entity_type = ? AND entity_id = ?", enums.SEOEntityProduct, created.ID).First(&url).Error)
	assert.Equal(t, "/products/arreglos/cajas/caja-de-rosas", url.FullPath)

	_, err = f.svc.Update(ctx, 999, req)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestGetCountsViews(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, "rosa-roja")

	first, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	bySlug, err := f.svc.GetBySlug(ctx, "rosa-roja")
	require.NoError(t, err)
	assert.Equal(t, int64(2), bySlug.Views)

	_, err = f.svc.Get(ctx, 999)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	_, err = f.svc.GetBySlug(ctx, "nada")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDetailIncludesRatingSummary(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "rosa-roja")
	rows := []models.Review{
		{ProductID: created.ID, CustomerName: "Ana", Rating: 5, Status: enums.ReviewStatusApproved},
		{ProductID: created.ID, CustomerName: "Luis", Rating: 3, Status: enums.ReviewStatusApproved},
		{ProductID: created.ID, CustomerName: "Eva", Rating: 1, Status: enums.ReviewStatusPending},
	}
	require.NoError(t, f.conn.Create(&rows).Error)

	got, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Rating.Count)
	assert.InDelta(t, 4.0, got.Rating.Average, 0.0001)
}

func TestListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	seed := func(slug string, featured, active bool, at time.Time) {
		t.Helper()
		product := &models.Product{
			Title:         slug,
			Slug:          slug,
			Status:        active,
			Featured:      featured,
			Price:         decimal.NewFromInt(1000),
			StockStatus:   enums.StockStatusAvailable,
			CategoryID:    f.flores.ID,
			SubCategoryID: f.rosas.ID,
			CreatedAt:     at,
		}
		require.NoError(t, f.conn.Create(product).Error)
	}
	seed("viejo", false, true, base)
	seed("medio", true, true, base.Add(time.Hour))
	seed("nuevo", true, true, base.Add(2*time.Hour))
	seed("oculto", true, false, base.Add(3*time.Hour))

	page, err := f.svc.List(ctx, Filter{}, pagination.Params{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "nuevo", page.Content[0].Slug)
	assert.Equal(t, "/products/flores/rosas/nuevo", page.Content[0].FullPath)
	assert.Equal(t, "Flores", page.Content[0].Category.Name)

	featured, err := f.svc.List(ctx, Filter{Featured: boolPtr(true), CategoryID: int64Ptr(f.flores.ID)}, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, featured.Content, 2)

	none, err := f.svc.List(ctx, Filter{SubCategoryID: int64Ptr(f.cajas.ID)}, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, none.Content)
	assert.Equal(t, pagination.DefaultSize, none.Size)
}

func TestDeleteRemovesChildrenAndSEO(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, "rosa-roja")

	_, err := f.svc.UploadImage(ctx, created.ID, jpegUpload(10, true))
	require.NoError(t, err)
	_, err = f.svc.AddDescription(ctx, created.ID, DescriptionRequest{Paragraph: "Doce rosas"})
	require.NoError(t, err)
	require.NoError(t, f.conn.Create(&models.Review{ProductID: created.ID, CustomerName: "Ana", Rating: 5, Status: enums.ReviewStatusApproved}).Error)

	f.store.deleteErr = errors.New("bucket unavailable")
	require.NoError(t, f.svc.Delete(ctx, created.ID))

	for _, model := range []any{&models.Product{}, &models.ProductGallery{}, &models.ProductDescription{}, &models.Review{}, &models.SEOURL{}, &models.SEOMetadata{}} {
		var count int64
		require.NoError(t, f.conn.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T rows left", model)
	}
	require.Len(t, f.store.deleted, 1)
	assert.Contains(t, f.logs.String(), "storage.delete_failed")

	assert.True(t, pkgerrors.IsCode(f.svc.Delete(ctx, created.ID), pkgerrors.CodeNotFound))
}

func TestToggleAndTags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, "rosa-roja")
	amor := &models.Tag{Text: "Amor", Route: "amor", Status: true}
	cumple := &models.Tag{Text: "Cumpleaños", Route: "cumpleanos", Status: true}
	require.NoError(t, f.conn.Create(amor).Error)
	require.NoError(t, f.conn.Create(cumple).Error)

	toggled, err := f.svc.ToggleStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Status)

	assigned, err := f.svc.ReplaceTags(ctx, created.ID, []int64{amor.ID, cumple.ID})
	require.NoError(t, err)
	assert.Len(t, assigned, 2)

	left, err := f.svc.RemoveTags(ctx, created.ID, []int64{amor.ID})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, cumple.ID, left[0].ID)

	replaced, err := f.svc.ReplaceTags(ctx, created.ID, []int64{amor.ID})
	require.NoError(t, err)
	require.Len(t, replaced, 1)
	assert.Equal(t, amor.ID, replaced[0].ID)

	var links int64
	require.NoError(t, f.conn.Table("product_tags").Count(&links).Error)
	assert.Equal(t, int64(1), links)
}

package seo

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Emman-24/backendFlorist/pkg/db/dbtest"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testBaseURL    = "https://www.floristeriaakasia.com.co"
	testBackendURL = "https://backend.floristeriaakasia.com.co"
)

type catalogFixture struct {
	category *models.Category
	sub      *models.SubCategory
	product  *models.Product
}

func newTestService(t *testing.T, c cache) (*Service, *gorm.DB) {
	t.Helper()
	client, conn := dbtest.Client(t)
	params := ServiceParams{DB: client, BaseURL: testBaseURL + "/", BackendURL: testBackendURL}
	if c != nil {
		params.Cache = c
	}
	svc, err := NewService(params)
	require.NoError(t, err)
	return svc, conn
}

func seedCatalog(t *testing.T, conn *gorm.DB) catalogFixture {
	t.Helper()
	category := &models.Category{Text: "Flores", Route: "flores", Status: true}
	require.NoError(t, conn.Create(category).Error)
	sub := &models.SubCategory{Text: "Rosas", Route: "rosas", Status: true, CategoryID: category.ID}
	require.NoError(t, conn.Create(sub).Error)
	product := &models.Product{
		Title:         "Rosa Roja",
		Slug:          "rosa-roja",
		Status:        true,
		Price:         decimal.NewFromInt(50000),
		StockStatus:   enums.StockStatusAvailable,
		CategoryID:    category.ID,
		SubCategoryID: sub.ID,
	}
	require.NoError(t, conn.Create(product).Error)

	sub.Category = category
	product.Category = category
	product.SubCategory = sub
	return catalogFixture{category: category, sub: sub, product: product}
}

func TestPathsAreDeterministic(t *testing.T) {
	category := &models.Category{Route: "flores"}
	sub := &models.SubCategory{Route: "rosas", Category: category}
	product := &models.Product{Slug: "rosa-roja", Category: category, SubCategory: sub, Price: decimal.NewFromInt(1)}

	if got := PathForCategory(category); got != "/products/flores" {
		t.Fatalf("unexpected category path %q", got)
	}
	if got := PathForSubCategory(sub); got != "/products/flores/rosas" {
		t.Fatalf("unexpected subcategory path %q", got)
	}
	if got := PathForProduct(product); got != "/products/flores/rosas/rosa-roja" {
		t.Fatalf("unexpected product path %q", got)
	}

	product.Price = decimal.NewFromInt(99)
	if got := PathForProduct(product); got != "/products/flores/rosas/rosa-roja" {
		t.Fatalf("price change altered path: %q", got)
	}
	category.Route = "arreglos"
	if got := PathForProduct(product); got != "/products/arreglos/rosas/rosa-roja" {
		t.Fatalf("ancestor route change not reflected: %q", got)
	}
}

func TestUpsertURLCreatesAndSkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t, nil)
	fx := seedCatalog(t, conn)

	row, err := svc.UpsertProductURL(ctx, fx.product)
	require.NoError(t, err)
	assert.Equal(t, "/products/flores/rosas/rosa-roja", row.FullPath)
	assert.Equal(t, testBaseURL+"/products/flores/rosas/rosa-roja", row.CanonicalURL)

	require.NoError(t, conn.Model(&models.SEOURL{}).Where("id = ?", row.ID).UpdateColumn("canonical_url", "sentinel").Error)
	_, err = svc.UpsertProductURL(ctx, fx.product)
	require.NoError(t, err)

	var stored models.SEOURL
	require.NoError(t, conn.First(&stored, row.ID).Error)
	assert.Equal(t, "sentinel", stored.CanonicalURL, "unchanged path must not be rewritten")

	fx.product.Slug = "rosa-roja-premium"
	updated, err := svc.UpsertProductURL(ctx, fx.product)
	require.NoError(t, err)
	assert.Equal(t, row.ID, updated.ID)
	require.NoError(t, conn.First(&stored, row.ID).Error)
	assert.Equal(t, "/products/flores/rosas/rosa-roja-premium", stored.FullPath)
	assert.Equal(t, "rosa-roja-premium", stored.Slug)
	assert.Equal(t, testBaseURL+"/products/flores/rosas/rosa-roja-premium", stored.CanonicalURL)
}

func TestUpsertURLRejectsDuplicatePath(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t, nil)
	fx := seedCatalog(t, conn)

	_, err := svc.UpsertURL(ctx, enums.SEOEntityProduct, fx.product.ID, "/products/flores/rosas/rosa-roja", "rosa-roja")
	require.NoError(t, err)
	_, err = svc.UpsertURL(ctx, enums.SEOEntityProduct, fx.product.ID+100, "/products/flores/rosas/rosa-roja", "rosa-roja")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestResolveAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t, nil)
	fx := seedCatalog(t, conn)

	_, err := svc.UpsertCategoryURL(ctx, fx.category)
	require.NoError(t, err)

	res, found, err := svc.Resolve(ctx, "/products/flores")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, enums.SEOEntityCategory, res.EntityType)
	assert.Equal(t, fx.category.ID, res.EntityID)

	_, found, err = svc.Resolve(ctx, "/products/nada")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, svc.DeleteURL(ctx, enums.SEOEntityCategory, fx.category.ID))
	_, found, err = svc.Resolve(ctx, "/products/flores")
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, svc.DeleteURL(ctx, enums.SEOEntityCategory, fx.category.ID))
}

func TestSyncCategoryTreeCascadesRouteChange(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t, nil)
	fx := seedCatalog(t, conn)

	require.NoError(t, svc.SyncCategoryTree(ctx, fx.category))

	fx.category.Route = "arreglos"
	require.NoError(t, conn.Save(fx.category).Error)
	require.NoError(t, svc.SyncCategoryTree(ctx, fx.category))

	sub, err := svc.URLFor(ctx, enums.SEOEntitySubCategory, fx.sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "/products/arreglos/rosas", sub.FullPath)

	product, err := svc.URLFor(ctx, enums.SEOEntityProduct, fx.product.ID)
	require.NoError(t, err)
	assert.Equal(t, "/products/arreglos/rosas/rosa-roja", product.FullPath)
}

func TestGenerateCreatesMetadata(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t, nil)
	fx := seedCatalog(t, conn)

	row, err := svc.Generate(ctx, fx.product)
	require.NoError(t, err)
	assert.False(t, row.IsCustom)
	assert.Contains(t, row.MetaTitle, "Rosa Roja")
	assert.LessOrEqual(t, len([]rune(row.MetaTitle)), 60)
	assert.Contains(t, row.MetaDescription, "Arreglos florales de Flores")
	assert.Contains(t, row.MetaDescription, "$50000.00 COP")

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(row.SchemaMarkup), &schema))
	assert.Equal(t, "Product", schema["@type"])
	assert.Equal(t, testBackendURL+"/images/placeholder-product.jpg", schema["image"])
	offers := schema["offers"].(map[string]any)
	assert.Equal(t, "50000.00", offers["price"])
	assert.Equal(t, "COP", offers["priceCurrency"])
	assert.Equal(t, testBaseURL+"/products/flores/rosas/rosa-roja", offers["url"])
	assert.Equal(t, "https://schema.org/InStock", offers["availability"])
}

func TestMetaTitleDropsSuffixesBeforeTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Ramo", "Ramo - Floristería Akasia Pereira | Entrega a Domicilio"},
		{"Rosa Roja Premium", "Rosa Roja Premium - Floristería Akasia Pereira"},
		{"Arreglo de girasoles y rosas para aniversario", "Arreglo de girasoles y rosas para aniversario"},
		{strings.Repeat("a", 70), strings.Repeat("a", 60)},
	}
	for _, tc := range cases {
		got := metaTitle(&models.Product{Title: tc.title})
		if got != tc.want {
			t.Fatalf("metaTitle(%q) = %q, want %q", tc.title, got, tc.want)
		}
		if n := len([]rune(got)); n > maxTitleRunes {
			t.Fatalf("metaTitle(%q) has %d runes", tc.title, n)
		}
	}
}

func TestGenerateOverwritesNonCustomAndKeepsCustom(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t, nil)
	fx := seedCatalog(t, conn)

	_, err := svc.Generate(ctx, fx.product)
	require.NoError(t, err)

	fx.product.Title = "Rosa Blanca"
	fx.product.Gallery = []models.ProductGallery{{URL: "https://cdn.example.com/rosa.jpg", IsPrimary: true}}
	row, err := svc.Generate(ctx, fx.product)
	require.NoError(t, err)
	assert.Contains(t, row.MetaTitle, "Rosa Blanca")
	assert.Contains(t, row.SchemaMarkup, "https://cdn.example.com/rosa.jpg")

	title := "Rosas para toda ocasion"
	custom, err := svc.SetCustom(ctx, fx.product, CustomMetadata{Title: &title})
	require.NoError(t, err)
	assert.True(t, custom.IsCustom)
	assert.Equal(t, title, custom.MetaTitle)
	assert.Equal(t, row.MetaDescription, custom.MetaDescription)

	fx.product.Price = decimal.NewFromInt(75000)
	again, err := svc.Generate(ctx, fx.product)
	require.NoError(t, err)
	assert.Equal(t, title, again.MetaTitle)
	assert.True(t, again.IsCustom)

	var count int64
	require.NoError(t, conn.Model(&models.SEOMetadata{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetCustomRebuildsSchema(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t, nil)
	fx := seedCatalog(t, conn)

	fx.product.Title = `Rosa "Especial" \ Edicion`
	row, err := svc.SetCustom(ctx, fx.product, CustomMetadata{})
	require.NoError(t, err)
	assert.True(t, row.IsCustom)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(row.SchemaMarkup), &schema))
	assert.Equal(t, `Rosa "Especial" \ Edicion`, schema["name"])

	fx.product.Price = decimal.NewFromInt(80000)
	row, err = svc.SetCustom(ctx, fx.product, CustomMetadata{})
	require.NoError(t, err)
	assert.Contains(t, row.SchemaMarkup, `"price":"80000.00"`)
}

func TestGetOrGenerateOnlyForProducts(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t, nil)
	fx := seedCatalog(t, conn)

	row, err := svc.GetOrGenerate(ctx, enums.SEOEntityCategory, fx.category.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, row)

	row, err = svc.GetOrGenerate(ctx, enums.SEOEntityProduct, 9999, nil)
	require.NoError(t, err)
	assert.Nil(t, row)

	row, err = svc.GetOrGenerate(ctx, enums.SEOEntityProduct, fx.product.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Contains(t, row.MetaTitle, "Rosa Roja")

	again, err := svc.GetOrGenerate(ctx, enums.SEOEntityProduct, fx.product.ID, func(context.Context, int64) (*models.Product, error) {
		t.Fatal("lookup must not run when a row exists")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, row.ID, again.ID)
}

func TestDeleteProductSEO(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t, nil)
	fx := seedCatalog(t, conn)

	require.NoError(t, svc.RefreshProduct(ctx, fx.product))
	require.NoError(t, svc.DeleteProductSEO(ctx, fx.product.ID))

	var urls, metas int64
	require.NoError(t, conn.Model(&models.SEOURL{}).Count(&urls).Error)
	require.NoError(t, conn.Model(&models.SEOMetadata{}).Count(&metas).Error)
	assert.Zero(t, urls)
	assert.Zero(t, metas)
}

func TestRegenerateAll(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t, nil)
	fx := seedCatalog(t, conn)
	second := &models.Product{
		Title: "Girasol", Slug: "girasol", Status: true, Price: decimal.NewFromInt(30000),
		StockStatus: enums.StockStatusSeasonal, CategoryID: fx.category.ID, SubCategoryID: fx.sub.ID,
	}
	require.NoError(t, conn.Create(second).Error)

	result, err := svc.RegenerateAll(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, RegenerateResult{EntityType: enums.SEOEntityProduct, Processed: 2}, result)

	res, found, err := svc.Resolve(ctx, "/products/flores/rosas/girasol")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, second.ID, res.EntityID)

	result, err = svc.RegenerateAllProductMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)

	_, err = svc.RegenerateAll(ctx, "tags")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

type memoryCache struct {
	mu      sync.Mutex
	values  map[string]string
	evicted []string
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value.(string)
	return nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
		m.evicted = append(m.evicted, k)
	}
	return nil
}

func (m *memoryCache) CacheKey(scope string, parts ...string) string {
	return scope + ":" + strings.Join(parts, ":")
}

func TestResolveUsesCacheAndEvictsOnChange(t *testing.T) {
	ctx := context.Background()
	store := &memoryCache{values: map[string]string{}}
	svc, conn := newTestService(t, store)
	fx := seedCatalog(t, conn)

	_, err := svc.UpsertCategoryURL(ctx, fx.category)
	require.NoError(t, err)
	_, found, err := svc.Resolve(ctx, "/products/flores")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, store.values, "seo_resolve:/products/flores")

	fx.category.Route = "arreglos"
	_, err = svc.UpsertCategoryURL(ctx, fx.category)
	require.NoError(t, err)
	assert.NotContains(t, store.values, "seo_resolve:/products/flores")

	_, found, err = svc.Resolve(ctx, "/products/flores")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheEvictionWaitsForCommit(t *testing.T) {
	ctx := context.Background()
	store := &memoryCache{values: map[string]string{}}
	svc, conn := newTestService(t, store)
	fx := seedCatalog(t, conn)

	_, err := svc.UpsertCategoryURL(ctx, fx.category)
	require.NoError(t, err)
	_, found, err := svc.Resolve(ctx, "/products/flores")
	require.NoError(t, err)
	require.True(t, found)

	fx.category.Route = "arreglos"
	err = svc.db.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := svc.Tx(tx).UpsertCategoryURL(ctx, fx.category); err != nil {
			return err
		}
		assert.Contains(t, store.values, "seo_resolve:/products/flores", "evicted before commit")
		return nil
	})
	require.NoError(t, err)
	assert.NotContains(t, store.values, "seo_resolve:/products/flores")

	_, found, err = svc.Resolve(ctx, "/products/arreglos")
	require.NoError(t, err)
	require.True(t, found)

	fx.category.Route = "regalos"
	err = svc.db.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := svc.Tx(tx).UpsertCategoryURL(ctx, fx.category); err != nil {
			return err
		}
		return pkgerrors.New(pkgerrors.CodeInternal, "abort")
	})
	require.Error(t, err)
	assert.Contains(t, store.values, "seo_resolve:/products/arreglos", "rolled back path stays cached")
}

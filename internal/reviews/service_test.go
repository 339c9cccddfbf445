package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/Emman-24/backendFlorist/pkg/db/dbtest"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*service, *gorm.DB) {
	t.Helper()
	client, conn := dbtest.Client(t)
	svc, err := NewService(client)
	require.NoError(t, err)
	return svc.(*service), conn
}

func seedProduct(t *testing.T, conn *gorm.DB) *models.Product {
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
	return product
}

func TestCreateStartsPending(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	product := seedProduct(t, conn)
	email := "  Ana@Example.com "

	review, err := svc.Create(ctx, product.ID, CreateRequest{CustomerName: " Ana ", CustomerEmail: &email, Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, enums.ReviewStatusPending, review.Status)
	assert.Equal(t, "Ana", review.CustomerName)
	assert.Nil(t, review.PublishedAt)

	var stored models.Review
	require.NoError(t, conn.First(&stored, review.ID).Error)
	require.NotNil(t, stored.CustomerEmail)
	assert.Equal(t, "ana@example.com", *stored.CustomerEmail)

	_, err = svc.Create(ctx, product.ID, CreateRequest{CustomerName: "Ana", Rating: 6})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Create(ctx, 999, CreateRequest{CustomerName: "Ana", Rating: 4})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestApprovedListingAndSummary(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	product := seedProduct(t, conn)
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	rows := []models.Review{
		{ProductID: product.ID, CustomerName: "Ana", Rating: 5, Status: enums.ReviewStatusApproved, CreatedAt: base},
		{ProductID: product.ID, CustomerName: "Luis", Rating: 4, Status: enums.ReviewStatusApproved, CreatedAt: base.Add(time.Hour)},
		{ProductID: product.ID, CustomerName: "Eva", Rating: 4, Status: enums.ReviewStatusApproved, CreatedAt: base.Add(2 * time.Hour)},
		{ProductID: product.ID, CustomerName: "Spam", Rating: 1, Status: enums.ReviewStatusRejected, CreatedAt: base},
	}
	require.NoError(t, conn.Create(&rows).Error)

	got, err := svc.ListApproved(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, got.Reviews, 3)
	assert.Equal(t, "Eva", got.Reviews[0].CustomerName)
	assert.Equal(t, int64(3), got.Summary.Count)
	assert.InDelta(t, 4.3, got.Summary.Average, 0.0001)
}

func TestEmptySummary(t *testing.T) {
	svc, conn := newTestService(t)
	product := seedProduct(t, conn)

	got, err := svc.ListApproved(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Reviews)
	assert.Equal(t, Summary{}, got.Summary)
}

func TestModeration(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	product := seedProduct(t, conn)
	fixed := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	review, err := svc.Create(ctx, product.ID, CreateRequest{CustomerName: "Ana", Rating: 5})
	require.NoError(t, err)

	pending, err := svc.ListByStatus(ctx, "", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, pending.Content, 1)
	assert.Equal(t, int64(1), pending.TotalElements)

	_, err = svc.ListByStatus(ctx, "spam", pagination.Params{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	approved, err := svc.UpdateStatus(ctx, review.ID, "APPROVED")
	require.NoError(t, err)
	assert.Equal(t, enums.ReviewStatusApproved, approved.Status)
	require.NotNil(t, approved.PublishedAt)
	assert.True(t, approved.PublishedAt.Equal(fixed))

	_, err = svc.UpdateStatus(ctx, review.ID, "archived")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	require.NoError(t, svc.Delete(ctx, review.ID))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, review.ID), pkgerrors.CodeNotFound))
}

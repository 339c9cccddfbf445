package reviews

import (
	"context"
	"math"

	"github.com/Emman-24/backendFlorist/internal/repo"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	"github.com/Emman-24/backendFlorist/pkg/pagination"
	"gorm.io/gorm"
)

type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

func (r *Repository) ListByProduct(ctx context.Context, productID int64, status enums.ReviewStatus) ([]models.Review, error) {
	var rows []models.Review
	err := r.DB(ctx).
		Where("product_id = ? AND status = ?", productID, status).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListByStatus(ctx context.Context, status enums.ReviewStatus, params pagination.Params) ([]models.Review, int64, error) {
	query := r.DB(ctx).Model(&models.Review{}).Where("status = ?", status)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.Review
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Scopes(repo.Paginate(params)).
		Find(&rows).Error
	return rows, total, err
}

// Summary averages approved ratings, rounded to one decimal place.
func (r *Repository) Summary(ctx context.Context, productID int64) (Summary, error) {
	var row struct {
		Average *float64
		Count   int64
	}
	err := r.DB(ctx).
		Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("product_id = ? AND status = ?", productID, enums.ReviewStatusApproved).
		Scan(&row).Error
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{Count: row.Count}
	if row.Average != nil {
		summary.Average = math.Round(*row.Average*10) / 10
	}
	return summary, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.DB(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *Repository) ProductExists(ctx context.Context, productID int64) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error
	return count > 0, err
}

// DeleteByProduct removes every review of a product.
func (r *Repository) DeleteByProduct(ctx context.Context, productID int64) error {
	return r.DB(ctx).Where("product_id = ?", productID).Delete(&models.Review{}).Error
}

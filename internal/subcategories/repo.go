package subcategories

import (
	"context"

	"github.com/Emman-24/backendFlorist/internal/repo"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"gorm.io/gorm"
)

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

func (r *Repository) List(ctx context.Context) ([]models.SubCategory, error) {
	var rows []models.SubCategory
	err := r.DB(ctx).Preload("Category").Order("position ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

// ListActiveByCategory returns the active subcategories of a category by position.
func (r *Repository) ListActiveByCategory(ctx context.Context, categoryID int64) ([]models.SubCategory, error) {
	var rows []models.SubCategory
	err := r.DB(ctx).
		Preload("Category").
		Where("category_id = ? AND status = ?", categoryID, true).
		Order("position ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.DB(ctx).Preload("Category").First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindByRoute returns the first subcategory with the route; routes are only unique per category.
func (r *Repository) FindByRoute(ctx context.Context, route string) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.DB(ctx).Preload("Category").Where("route = ?", route).Order("id ASC").First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *Repository) FindCategory(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) Create(ctx context.Context, sub *models.SubCategory) error {
	return r.DB(ctx).Omit("Category").Create(sub).Error
}

func (r *Repository) Save(ctx context.Context, sub *models.SubCategory) error {
	return r.DB(ctx).Omit("Category").Save(sub).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.SubCategory{}, "id = ?", id).Error
}

func (r *Repository) CountProducts(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Product{}).Where("subcategory_id = ?", id).Count(&count).Error
	return count, err
}

// MoveProducts re-parents every product of the subcategory onto categoryID.
func (r *Repository) MoveProducts(ctx context.Context, id, categoryID int64) error {
	return r.DB(ctx).
		Model(&models.Product{}).
		Where("subcategory_id = ?", id).
		UpdateColumn("category_id", categoryID).Error
}

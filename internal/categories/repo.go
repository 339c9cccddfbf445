package categories

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

// List returns categories ordered by position, optionally only active ones.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	query := r.DB(ctx).Model(&models.Category{})
	if activeOnly {
		query = query.Where("status = ?", true)
	}
	var rows []models.Category
	err := query.Order("position ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) FindByRoute(ctx context.Context, route string) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).Where("route = ?", route).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).Omit("SubCategories").Create(category).Error
}

func (r *Repository) Save(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).Omit("SubCategories").Save(category).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func (r *Repository) UpdatePosition(ctx context.Context, id int64, position int) (bool, error) {
	res := r.DB(ctx).Model(&models.Category{}).Where("id = ?", id).UpdateColumn("position", position)
	return res.RowsAffected > 0, res.Error
}

// ChildCounts returns total and active counts of the rows in model whose category_id is id.
func (r *Repository) ChildCounts(ctx context.Context, model any, id int64) (total, active int64, err error) {
	if err = r.DB(ctx).Model(model).Where("category_id = ?", id).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.DB(ctx).Model(model).Where("category_id = ? AND status = ?", id, true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

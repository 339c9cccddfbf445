package seo

import (
	"context"

	"github.com/Emman-24/backendFlorist/internal/repo"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	"gorm.io/gorm"
)

// Repository accesses seo_urls, seo_metadata and the catalog rows they describe.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) FindURL(ctx context.Context, entityType enums.SEOEntityType, entityID int64) (*models.SEOURL, error) {
	var row models.SEOURL
	err := r.DB(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) FindURLByPath(ctx context.Context, fullPath string) (*models.SEOURL, error) {
	var row models.SEOURL
	if err := r.DB(ctx).Where("full_path = ?", fullPath).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) CreateURL(ctx context.Context, row *models.SEOURL) error {
	return r.DB(ctx).Create(row).Error
}

// UpdateURLPath rewrites the derived path columns of an existing row.
func (r *Repository) UpdateURLPath(ctx context.Context, row *models.SEOURL) error {
	return r.DB(ctx).
		Model(&models.SEOURL{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"slug":          row.Slug,
			"full_path":     row.FullPath,
			"canonical_url": row.CanonicalURL,
		}).Error
}

func (r *Repository) DeleteURL(ctx context.Context, entityType enums.SEOEntityType, entityID int64) error {
	return r.DB(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Delete(&models.SEOURL{}).Error
}

func (r *Repository) FindMetadata(ctx context.Context, entityType enums.SEOEntityType, entityID int64) (*models.SEOMetadata, error) {
	var row models.SEOMetadata
	err := r.DB(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) SaveMetadata(ctx context.Context, row *models.SEOMetadata) error {
	return r.DB(ctx).Save(row).Error
}

func (r *Repository) DeleteMetadata(ctx context.Context, entityType enums.SEOEntityType, entityID int64) error {
	return r.DB(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Delete(&models.SEOMetadata{}).Error
}

func (r *Repository) LoadCategory(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) LoadSubCategory(ctx context.Context, id int64) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.DB(ctx).Preload("Category").First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// LoadProduct loads a product with everything metadata generation reads.
func (r *Repository) LoadProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).
		Preload("Category").
		Preload("SubCategory").
		Preload("Gallery").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) SubCategoriesOf(ctx context.Context, categoryID int64) ([]models.SubCategory, error) {
	var subs []models.SubCategory
	err := r.DB(ctx).
		Preload("Category").
		Where("category_id = ?", categoryID).
		Order("id").
		Find(&subs).Error
	return subs, err
}

// ProductsUnder returns the products whose path depends on the given column value.
func (r *Repository) ProductsUnder(ctx context.Context, column string, id int64) ([]models.Product, error) {
	var products []models.Product
	err := r.DB(ctx).
		Preload("Category").
		Preload("SubCategory").
		Where(column+" = ?", id).
		Order("id").
		Find(&products).Error
	return products, err
}

// EntityIDs lists every id of the given entity type, ordered.
func (r *Repository) EntityIDs(ctx context.Context, entityType enums.SEOEntityType) ([]int64, error) {
	var model any
	switch entityType {
	case enums.SEOEntityCategory:
		model = &models.Category{}
	case enums.SEOEntitySubCategory:
		model = &models.SubCategory{}
	default:
		model = &models.Product{}
	}

	var ids []int64
	err := r.DB(ctx).Model(model).Order("id").Pluck("id", &ids).Error
	return ids, err
}

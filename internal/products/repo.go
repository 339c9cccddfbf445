package products

import (
	"context"

	"github.com/Emman-24/backendFlorist/internal/repo"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("id ASC")
}

// ListActive returns one page of active products, newest first.
func (r *Repository) ListActive(ctx context.Context, filter Filter, params pagination.Params) ([]models.Product, int64, error) {
	query := r.DB(ctx).Model(&models.Product{}).Where("status = ?", true)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.SubCategoryID != nil {
		query = query.Where("subcategory_id = ?", *filter.SubCategoryID)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Seasonal != nil {
		query = query.Where("seasonal = ?", *filter.Seasonal)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := query.
		Preload("Category").
		Preload("SubCategory").
		Preload("Gallery", byPosition).
		Order("created_at DESC").
		Order("id DESC").
		Scopes(repo.Paginate(params)).
		Find(&rows).Error
	return rows, total, err
}

func (r *Repository) detail(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Preload("Category").
		Preload("SubCategory").
		Preload("Tags").
		Preload("Descriptions", byPosition).
		Preload("Gallery", byPosition).
		Preload("Variants", byPosition)
}

// FindDetail loads a product with every association the detail view renders.
func (r *Repository) FindDetail(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.detail(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) FindDetailBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.detail(ctx).First(&product, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindSubCategory loads a subcategory with its parent category.
func (r *Repository) FindSubCategory(ctx context.Context, id int64) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.DB(ctx).Preload("Category").First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *Repository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Omit(clause.Associations).Save(product).Error
}

func (r *Repository) IncrementViews(ctx context.Context, id int64) error {
	return r.DB(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// Delete removes the product and every child row in the current connection.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	db := r.DB(ctx)
	if err := db.Exec("DELETE FROM product_tags WHERE product_id = ?", id).Error; err != nil {
		return err
	}
	for _, child := range []any{&models.ProductDescription{}, &models.ProductGallery{}, &models.ProductVariant{}, &models.Review{}} {
		if err := db.Where("product_id = ?", id).Delete(child).Error; err != nil {
			return err
		}
	}
	return db.Delete(&models.Product{}, "id = ?", id).Error
}

func (r *Repository) ReplaceTags(ctx context.Context, product *models.Product, tags []models.Tag) error {
	if len(tags) == 0 {
		return r.DB(ctx).Model(product).Association("Tags").Clear()
	}
	return r.DB(ctx).Model(product).Association("Tags").Replace(tags)
}

func (r *Repository) RemoveTags(ctx context.Context, product *models.Product, tags []models.Tag) error {
	return r.DB(ctx).Model(product).Association("Tags").Delete(tags)
}

// CountChildren counts rows of model that belong to productID.
func (r *Repository) CountChildren(ctx context.Context, model any, productID int64) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(model).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

// FindChild loads a child row scoped to its product.
func (r *Repository) FindChild(ctx context.Context, dest any, productID, id int64) error {
	return r.DB(ctx).Where("product_id = ?", productID).First(dest, "id = ?", id).Error
}

func (r *Repository) CreateChild(ctx context.Context, row any) error {
	return r.DB(ctx).Create(row).Error
}

func (r *Repository) SaveChild(ctx context.Context, row any) error {
	return r.DB(ctx).Save(row).Error
}

func (r *Repository) DeleteChild(ctx context.Context, row any) error {
	return r.DB(ctx).Delete(row).Error
}

// ClearPrimary unsets the primary flag on every image of the product.
func (r *Repository) ClearPrimary(ctx context.Context, productID int64) error {
	return r.DB(ctx).
		Model(&models.ProductGallery{}).
		Where("product_id = ? AND is_primary = ?", productID, true).
		UpdateColumn("is_primary", false).Error
}

// ChildrenOf fills dest with the product's child rows ordered by position.
func (r *Repository) ChildrenOf(ctx context.Context, dest any, productID int64) error {
	return r.DB(ctx).Where("product_id = ?", productID).Scopes(byPosition).Find(dest).Error
}

func (r *Repository) UpdateDescriptionPosition(ctx context.Context, productID, id int64, position int) error {
	return r.DB(ctx).
		Model(&models.ProductDescription{}).
		Where("product_id = ? AND id = ?", productID, id).
		UpdateColumn("position", position).Error
}

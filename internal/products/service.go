package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/Emman-24/backendFlorist/internal/repo"
	"github.com/Emman-24/backendFlorist/internal/reviews"
	"github.com/Emman-24/backendFlorist/internal/seo"
	"github.com/Emman-24/backendFlorist/internal/tags"
	"github.com/Emman-24/backendFlorist/pkg/db"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/logger"
	"github.com/Emman-24/backendFlorist/pkg/pagination"
	"github.com/Emman-24/backendFlorist/pkg/storage"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var minPrice = decimal.New(1, -2)

// Service exposes catalog product operations.
type Service interface {
	List(ctx context.Context, filter Filter, params pagination.Params) (pagination.Page[ListItemDTO], error)
	Get(ctx context.Context, id int64) (*ProductDTO, error)
	GetBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	Create(ctx context.Context, req ProductRequest) (*ProductDTO, error)
	Update(ctx context.Context, id int64, req ProductRequest) (*ProductDTO, error)
	Delete(ctx context.Context, id int64) error
	ToggleStatus(ctx context.Context, id int64) (*ProductDTO, error)

	ReplaceTags(ctx context.Context, id int64, tagIDs []int64) ([]TagRef, error)
	RemoveTags(ctx context.Context, id int64, tagIDs []int64) ([]TagRef, error)

	UploadImage(ctx context.Context, id int64, upload ImageUpload) (*ImageDTO, error)
	DeleteImage(ctx context.Context, id, imageID int64) error

	AddDescription(ctx context.Context, id int64, req DescriptionRequest) (*DescriptionDTO, error)
	UpdateDescription(ctx context.Context, id, descriptionID int64, req DescriptionRequest) (*DescriptionDTO, error)
	DeleteDescription(ctx context.Context, id, descriptionID int64) error
	ReorderDescriptions(ctx context.Context, id int64, descriptionIDs []int64) ([]DescriptionDTO, error)

	AddVariant(ctx context.Context, id int64, req VariantRequest) (*VariantDTO, error)
	UpdateVariant(ctx context.Context, id, variantID int64, req VariantRequest) (*VariantDTO, error)
	DeleteVariant(ctx context.Context, id, variantID int64) error

	GetSEO(ctx context.Context, id int64) (*seo.MetadataDTO, error)
	UpdateSEO(ctx context.Context, id int64, input seo.CustomMetadata) (*seo.MetadataDTO, error)
}

type ServiceParams struct {
	DB             *db.Client
	SEO            *seo.Service
	Storage        storage.Provider
	MaxUploadBytes int64
	Logger         *logger.Logger
}

type service struct {
	db             *db.Client
	repo           *Repository
	seo            *seo.Service
	storage        storage.Provider
	maxUploadBytes int64
	logg           *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.SEO == nil {
		return nil, fmt.Errorf("seo service required")
	}
	if params.Storage == nil {
		return nil, fmt.Errorf("storage provider required")
	}
	if params.MaxUploadBytes <= 0 {
		params.MaxUploadBytes = 10 << 20
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		db:             params.DB,
		repo:           NewRepository(params.DB.DB()),
		seo:            params.SEO,
		storage:        params.Storage,
		maxUploadBytes: params.MaxUploadBytes,
		logg:           logg,
	}, nil
}

func (s *service) List(ctx context.Context, filter Filter, params pagination.Params) (pagination.Page[ListItemDTO], error) {
	params = params.Normalize()
	rows, total, err := s.repo.ListActive(ctx, filter, params)
	if err != nil {
		return pagination.Page[ListItemDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	items := make([]ListItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, listItemFromModel(&rows[i], seo.PathForProduct(&rows[i])))
	}
	return pagination.NewPage(items, params, total), nil
}

// Get returns the product detail and counts the view.
func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	if _, err := s.find(ctx, s.repo, id); err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment product views")
	}
	return s.detail(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	product, err := s.repo.FindDetailBySlug(ctx, slug)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Product with slug %s not found", slug)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	if err := s.repo.IncrementViews(ctx, product.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment product views")
	}
	product.Views++
	return s.toDTO(ctx, product)
}

func (s *service) Create(ctx context.Context, req ProductRequest) (*ProductDTO, error) {
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	var id int64
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := checkPlacement(ctx, txRepo, req.CategoryID, req.SubCategoryID); err != nil {
			return err
		}

		product := &models.Product{Status: true, StockStatus: enums.StockStatusAvailable}
		apply(product, req)
		if err := txRepo.Create(ctx, product); err != nil {
			return mapWriteError(err, product.Slug)
		}
		id = product.ID

		if len(req.TagIDs) > 0 {
			if _, err := s.replaceTags(ctx, tx, product, req.TagIDs); err != nil {
				return err
			}
		}
		return s.refreshSEO(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, id)
}

// Update replaces the product fields. Tags are only touched when TagIDs is non-nil.
func (s *service) Update(ctx context.Context, id int64, req ProductRequest) (*ProductDTO, error) {
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		product, err := s.find(ctx, txRepo, id)
		if err != nil {
			return err
		}
		if err := checkPlacement(ctx, txRepo, req.CategoryID, req.SubCategoryID); err != nil {
			return err
		}

		apply(product, req)
		if err := txRepo.Save(ctx, product); err != nil {
			return mapWriteError(err, product.Slug)
		}
		if req.TagIDs != nil {
			if _, err := s.replaceTags(ctx, tx, product, req.TagIDs); err != nil {
				return err
			}
		}
		return s.refreshSEO(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, id)
}

// Delete removes the product, its children and its SEO rows. Stored images are
// removed after the commit and failures there are only logged.
func (s *service) Delete(ctx context.Context, id int64) error {
	var gallery []models.ProductGallery
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := s.find(ctx, txRepo, id); err != nil {
			return err
		}
		if err := txRepo.ChildrenOf(ctx, &gallery, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list product images")
		}
		if err := s.seo.Tx(tx).DeleteProductSEO(ctx, id); err != nil {
			return err
		}
		if err := txRepo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i := range gallery {
		s.deleteObject(ctx, gallery[i].StoredName)
	}
	return nil
}

func (s *service) ToggleStatus(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.find(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DB(ctx).Model(product).UpdateColumn("status", !product.Status).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle product status")
	}
	return s.detail(ctx, id)
}

func (s *service) ReplaceTags(ctx context.Context, id int64, tagIDs []int64) ([]TagRef, error) {
	var refs []TagRef
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		product, err := s.find(ctx, s.repo.WithTx(tx), id)
		if err != nil {
			return err
		}
		refs, err = s.replaceTags(ctx, tx, product, tagIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func (s *service) RemoveTags(ctx context.Context, id int64, tagIDs []int64) ([]TagRef, error) {
	var refs []TagRef
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		product, err := s.find(ctx, txRepo, id)
		if err != nil {
			return err
		}
		found, err := tags.NewRepository(tx).FindByIDs(ctx, tagIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup tags")
		}
		if len(found) > 0 {
			if err := txRepo.RemoveTags(ctx, product, found); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove product tags")
			}
		}
		refs, err = s.currentTags(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// replaceTags links exactly the existing tags among tagIDs. Unknown ids are ignored.
func (s *service) replaceTags(ctx context.Context, tx *gorm.DB, product *models.Product, tagIDs []int64) ([]TagRef, error) {
	found, err := tags.NewRepository(tx).FindByIDs(ctx, tagIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup tags")
	}
	if err := s.repo.WithTx(tx).ReplaceTags(ctx, product, found); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace product tags")
	}
	return s.currentTags(ctx, tx, product.ID)
}

func (s *service) currentTags(ctx context.Context, tx *gorm.DB, id int64) ([]TagRef, error) {
	product, err := s.repo.WithTx(tx).FindDetail(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product tags")
	}
	return FromModel(product, "", reviews.Summary{}).Tags, nil
}

// refreshSEO reloads the product inside tx and upserts its URL and metadata.
func (s *service) refreshSEO(ctx context.Context, tx *gorm.DB, id int64) error {
	product, err := s.repo.WithTx(tx).FindDetail(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload product")
	}
	return s.seo.Tx(tx).RefreshProduct(ctx, product)
}

func (s *service) detail(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Product with id %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return s.toDTO(ctx, product)
}

func (s *service) toDTO(ctx context.Context, product *models.Product) (*ProductDTO, error) {
	rating, err := reviews.NewRepository(s.repo.Conn()).Summary(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summarize reviews")
	}
	dto := FromModel(product, seo.PathForProduct(product), rating)

	meta, err := s.seo.MetadataFor(ctx, enums.SEOEntityProduct, product.ID)
	if err != nil {
		return nil, err
	}
	if meta != nil {
		dto.MetaTitle = meta.MetaTitle
		dto.MetaDesc = meta.MetaDescription
	}
	return &dto, nil
}

func (s *service) find(ctx context.Context, r *Repository, id int64) (*models.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Product with id %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	return product, nil
}

func (s *service) deleteObject(ctx context.Context, publicID string) {
	if strings.TrimSpace(publicID) == "" {
		return
	}
	if err := s.storage.Delete(ctx, publicID); err != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"public_id": publicID,
			"error":     err.Error(),
		})
		s.logg.Warn(logCtx, "storage.delete_failed")
	}
}

// checkPlacement requires the category to exist and the subcategory to belong to it.
func checkPlacement(ctx context.Context, r *Repository, categoryID, subCategoryID int64) error {
	ok, err := r.CategoryExists(ctx, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "Category not found").
			WithDetails(map[string]string{"categoryId": "Category not found"})
	}

	sub, err := r.FindSubCategory(ctx, subCategoryID)
	if err != nil {
		if repo.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeValidation, "Subcategory not found").
				WithDetails(map[string]string{"subcategoryId": "Subcategory not found"})
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup subcategory")
	}
	if sub.CategoryID != categoryID {
		msg := "Subcategory does not belong to the selected category"
		return pkgerrors.New(pkgerrors.CodeValidation, msg).
			WithDetails(map[string]string{"subcategoryId": msg})
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.LessThan(minPrice) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Price must be at least 0.01").
			WithDetails(map[string]string{"price": "must be at least 0.01"})
	}
	return nil
}

func apply(product *models.Product, req ProductRequest) {
	product.Title = strings.TrimSpace(req.Title)
	product.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	product.Price = req.Price.Round(2)
	if req.StockStatus != "" {
		product.StockStatus = req.StockStatus
	}
	product.Seasonal = req.Seasonal
	product.Featured = req.Featured
	product.FacebookURL = trimmedOrNil(req.FacebookURL)
	product.InstagramURL = trimmedOrNil(req.InstagramURL)
	product.CategoryID = req.CategoryID
	product.SubCategoryID = req.SubCategoryID
	product.Category = nil
	product.SubCategory = nil
	if req.Status != nil {
		product.Status = *req.Status
	}
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapWriteError(err error, slug string) error {
	if db.IsUniqueViolation(err, "uq_products_slug") || db.IsUniqueViolation(err, "products.slug") {
		return pkgerrors.Newf(pkgerrors.CodeConflict, "Product slug %s already exists", slug)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save product")
}

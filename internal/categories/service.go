package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Emman-24/backendFlorist/internal/repo"
	"github.com/Emman-24/backendFlorist/internal/seo"
	"github.com/Emman-24/backendFlorist/pkg/db"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes category management operations.
type Service interface {
	List(ctx context.Context, activeOnly bool) ([]CategoryDTO, error)
	Get(ctx context.Context, id int64) (*CategoryDTO, error)
	GetByRoute(ctx context.Context, route string) (*CategoryDTO, error)
	Stats(ctx context.Context, id int64) (*StatsDTO, error)
	Create(ctx context.Context, req CategoryRequest) (*CategoryDTO, error)
	Update(ctx context.Context, id int64, req CategoryRequest) (*CategoryDTO, error)
	Delete(ctx context.Context, id int64) error
	ToggleStatus(ctx context.Context, id int64) (*CategoryDTO, error)
	Reorder(ctx context.Context, req ReorderRequest) error
}

type service struct {
	db   *db.Client
	repo *Repository
	seo  *seo.Service
}

func NewService(dbClient *db.Client, seoService *seo.Service) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if seoService == nil {
		return nil, fmt.Errorf("seo service required")
	}
	return &service{
		db:   dbClient,
		repo: NewRepository(dbClient.DB()),
		seo:  seoService,
	}, nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i], seo.PathForCategory(&rows[i])))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*CategoryDTO, error) {
	category, err := s.find(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(category, seo.PathForCategory(category))
	return &dto, nil
}

func (s *service) GetByRoute(ctx context.Context, route string) (*CategoryDTO, error) {
	category, err := s.repo.FindByRoute(ctx, strings.TrimSpace(route))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Category with route %s not found", route)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
	}
	dto := FromModel(category, seo.PathForCategory(category))
	return &dto, nil
}

func (s *service) Stats(ctx context.Context, id int64) (*StatsDTO, error) {
	category, err := s.find(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	stats := &StatsDTO{ID: category.ID, Name: category.Text}
	stats.SubCategories, stats.ActiveSubCategories, err = s.repo.ChildCounts(ctx, &models.SubCategory{}, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count subcategories")
	}
	stats.Products, stats.ActiveProducts, err = s.repo.ChildCounts(ctx, &models.Product{}, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}
	return stats, nil
}

func (s *service) Create(ctx context.Context, req CategoryRequest) (*CategoryDTO, error) {
	category := &models.Category{Status: true}
	apply(category, req)

	var dto CategoryDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, category); err != nil {
			return mapWriteError(err, category.Route)
		}
		row, err := s.seo.Tx(tx).UpsertCategoryURL(ctx, category)
		if err != nil {
			return err
		}
		dto = FromModel(category, row.FullPath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, req CategoryRequest) (*CategoryDTO, error) {
	var dto CategoryDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		category, err := s.find(ctx, txRepo, id)
		if err != nil {
			return err
		}

		apply(category, req)
		if err := txRepo.Save(ctx, category); err != nil {
			return mapWriteError(err, category.Route)
		}
		if err := s.seo.Tx(tx).SyncCategoryTree(ctx, category); err != nil {
			return err
		}
		dto = FromModel(category, seo.PathForCategory(category))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// Delete refuses to remove a category that still has subcategories or products.
func (s *service) Delete(ctx context.Context, id int64) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := s.find(ctx, txRepo, id); err != nil {
			return err
		}

		subs, _, err := txRepo.ChildCounts(ctx, &models.SubCategory{}, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count subcategories")
		}
		products, _, err := txRepo.ChildCounts(ctx, &models.Product{}, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
		}
		if subs > 0 || products > 0 {
			return pkgerrors.Newf(pkgerrors.CodeStateConflict,
				"Cannot delete category with %d subcategories and %d products", subs, products)
		}

		if err := s.seo.Tx(tx).DeleteURL(ctx, enums.SEOEntityCategory, id); err != nil {
			return err
		}
		if err := txRepo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete category")
		}
		return nil
	})
}

func (s *service) ToggleStatus(ctx context.Context, id int64) (*CategoryDTO, error) {
	var dto CategoryDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		category, err := s.find(ctx, txRepo, id)
		if err != nil {
			return err
		}
		category.Status = !category.Status
		if err := txRepo.Save(ctx, category); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle category status")
		}
		dto = FromModel(category, seo.PathForCategory(category))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// Reorder applies new positions. Unknown ids are skipped.
func (s *service) Reorder(ctx context.Context, req ReorderRequest) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for id, position := range req.Positions {
			if position < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "positions must be non-negative")
			}
			if _, err := txRepo.UpdatePosition(ctx, id, position); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update category position")
			}
		}
		return nil
	})
}

func (s *service) find(ctx context.Context, r *Repository, id int64) (*models.Category, error) {
	category, err := r.FindByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Category with id %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
	}
	return category, nil
}

func apply(category *models.Category, req CategoryRequest) {
	category.Text = strings.TrimSpace(req.Text)
	category.Route = strings.ToLower(strings.TrimSpace(req.Route))
	category.Description = req.Description
	category.Position = req.Position
	if req.Status != nil {
		category.Status = *req.Status
	}
}

func mapWriteError(err error, route string) error {
	if db.IsUniqueViolation(err, "uq_categories_route") || db.IsUniqueViolation(err, "categories.route") {
		return pkgerrors.Newf(pkgerrors.CodeConflict, "Category route %s already exists", route)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save category")
}

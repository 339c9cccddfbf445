package subcategories

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

type Service interface {
	List(ctx context.Context) ([]SubCategoryDTO, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]SubCategoryDTO, error)
	Get(ctx context.Context, id int64) (*SubCategoryDTO, error)
	GetByRoute(ctx context.Context, route string) (*SubCategoryDTO, error)
	Create(ctx context.Context, req SubCategoryRequest) (*SubCategoryDTO, error)
	Update(ctx context.Context, id int64, req SubCategoryRequest) (*SubCategoryDTO, error)
	Delete(ctx context.Context, id int64) error
	ToggleStatus(ctx context.Context, id int64) (*SubCategoryDTO, error)
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
	return &service{db: dbClient, repo: NewRepository(dbClient.DB()), seo: seoService}, nil
}

func (s *service) List(ctx context.Context) ([]SubCategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list subcategories")
	}
	return toDTOs(rows), nil
}

func (s *service) ListByCategory(ctx context.Context, categoryID int64) ([]SubCategoryDTO, error) {
	rows, err := s.repo.ListActiveByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list subcategories")
	}
	return toDTOs(rows), nil
}

func (s *service) Get(ctx context.Context, id int64) (*SubCategoryDTO, error) {
	sub, err := s.find(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(sub, seo.PathForSubCategory(sub))
	return &dto, nil
}

func (s *service) GetByRoute(ctx context.Context, route string) (*SubCategoryDTO, error) {
	sub, err := s.repo.FindByRoute(ctx, strings.TrimSpace(route))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Subcategory with route %s not found", route)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup subcategory")
	}
	dto := FromModel(sub, seo.PathForSubCategory(sub))
	return &dto, nil
}

func (s *service) Create(ctx context.Context, req SubCategoryRequest) (*SubCategoryDTO, error) {
	var dto SubCategoryDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		category, err := s.parent(ctx, txRepo, req.CategoryID)
		if err != nil {
			return err
		}

		sub := &models.SubCategory{Status: true}
		apply(sub, req)
		sub.Category = category
		if err := txRepo.Create(ctx, sub); err != nil {
			return mapWriteError(err, sub.Route)
		}
		row, err := s.seo.Tx(tx).UpsertSubCategoryURL(ctx, sub)
		if err != nil {
			return err
		}
		dto = FromModel(sub, row.FullPath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, req SubCategoryRequest) (*SubCategoryDTO, error) {
	var dto SubCategoryDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		sub, err := s.find(ctx, txRepo, id)
		if err != nil {
			return err
		}
		moved := sub.CategoryID != req.CategoryID
		if moved {
			category, err := s.parent(ctx, txRepo, req.CategoryID)
			if err != nil {
				return err
			}
			sub.Category = category
		}

		apply(sub, req)
		if err := txRepo.Save(ctx, sub); err != nil {
			return mapWriteError(err, sub.Route)
		}
		// Products follow their subcategory so placement stays consistent.
		if moved {
			if err := txRepo.MoveProducts(ctx, sub.ID, sub.CategoryID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "move subcategory products")
			}
		}
		if err := s.seo.Tx(tx).SyncSubCategoryTree(ctx, sub); err != nil {
			return err
		}
		dto = FromModel(sub, seo.PathForSubCategory(sub))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := s.find(ctx, txRepo, id); err != nil {
			return err
		}
		products, err := txRepo.CountProducts(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
		}
		if products > 0 {
			return pkgerrors.Newf(pkgerrors.CodeStateConflict, "Cannot delete subcategory with %d products", products)
		}
		if err := s.seo.Tx(tx).DeleteURL(ctx, enums.SEOEntitySubCategory, id); err != nil {
			return err
		}
		if err := txRepo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete subcategory")
		}
		return nil
	})
}

func (s *service) ToggleStatus(ctx context.Context, id int64) (*SubCategoryDTO, error) {
	var dto SubCategoryDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		sub, err := s.find(ctx, txRepo, id)
		if err != nil {
			return err
		}
		sub.Status = !sub.Status
		if err := txRepo.Save(ctx, sub); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle subcategory status")
		}
		dto = FromModel(sub, seo.PathForSubCategory(sub))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func (s *service) find(ctx context.Context, r *Repository, id int64) (*models.SubCategory, error) {
	sub, err := r.FindByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Subcategory with id %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup subcategory")
	}
	return sub, nil
}

func (s *service) parent(ctx context.Context, r *Repository, categoryID int64) (*models.Category, error) {
	category, err := r.FindCategory(ctx, categoryID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Category not found").
				WithDetails(map[string]string{"categoryId": "Category not found"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
	}
	return category, nil
}

func apply(sub *models.SubCategory, req SubCategoryRequest) {
	sub.Text = strings.TrimSpace(req.Text)
	sub.Route = strings.ToLower(strings.TrimSpace(req.Route))
	sub.Description = req.Description
	sub.Position = req.Position
	sub.CategoryID = req.CategoryID
	if req.Status != nil {
		sub.Status = *req.Status
	}
}

func toDTOs(rows []models.SubCategory) []SubCategoryDTO {
	out := make([]SubCategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i], seo.PathForSubCategory(&rows[i])))
	}
	return out
}

func mapWriteError(err error, route string) error {
	if db.IsUniqueViolation(err, "uq_sub_category_category_route") || db.IsUniqueViolation(err, "sub_category.category_id") {
		return pkgerrors.Newf(pkgerrors.CodeConflict, "Subcategory route %s already exists in this category", route)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save subcategory")
}

package seo

import (
	"context"
	"encoding/json"

	"github.com/Emman-24/backendFlorist/internal/repo"
	"github.com/Emman-24/backendFlorist/pkg/db"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
)

// Resolution is the reverse lookup result for a public path.
type Resolution struct {
	EntityType   enums.SEOEntityType `json:"entityType"`
	EntityID     int64               `json:"entityId"`
	CanonicalURL string              `json:"canonicalUrl"`
}

// UpsertURL stores the canonical path for an entity. Nothing is written when
// the stored path already matches.
func (s *Service) UpsertURL(ctx context.Context, entityType enums.SEOEntityType, entityID int64, path, slug string) (*models.SEOURL, error) {
	existing, err := s.repo.FindURL(ctx, entityType, entityID)
	if err != nil && !repo.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup seo url")
	}

	if existing != nil {
		if existing.FullPath == path {
			return existing, nil
		}
		previous := existing.FullPath
		existing.FullPath = path
		existing.Slug = slug
		existing.CanonicalURL = s.CanonicalURL(path)
		if err := s.repo.UpdateURLPath(ctx, existing); err != nil {
			return nil, mapURLWriteError(err, path)
		}
		s.forget(ctx, previous, path)
		return existing, nil
	}

	row := &models.SEOURL{
		EntityType:   entityType,
		EntityID:     entityID,
		Slug:         slug,
		FullPath:     path,
		CanonicalURL: s.CanonicalURL(path),
		Status:       true,
	}
	if err := s.repo.CreateURL(ctx, row); err != nil {
		return nil, mapURLWriteError(err, path)
	}
	s.forget(ctx, path)
	return row, nil
}

func (s *Service) UpsertCategoryURL(ctx context.Context, category *models.Category) (*models.SEOURL, error) {
	return s.UpsertURL(ctx, enums.SEOEntityCategory, category.ID, PathForCategory(category), category.Route)
}

func (s *Service) UpsertSubCategoryURL(ctx context.Context, sub *models.SubCategory) (*models.SEOURL, error) {
	return s.UpsertURL(ctx, enums.SEOEntitySubCategory, sub.ID, PathForSubCategory(sub), sub.Route)
}

func (s *Service) UpsertProductURL(ctx context.Context, product *models.Product) (*models.SEOURL, error) {
	return s.UpsertURL(ctx, enums.SEOEntityProduct, product.ID, PathForProduct(product), product.Slug)
}

// SyncCategoryTree refreshes the category URL and every descendant path.
func (s *Service) SyncCategoryTree(ctx context.Context, category *models.Category) error {
	if _, err := s.UpsertCategoryURL(ctx, category); err != nil {
		return err
	}

	subs, err := s.repo.SubCategoriesOf(ctx, category.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list subcategories")
	}
	for i := range subs {
		if _, err := s.UpsertSubCategoryURL(ctx, &subs[i]); err != nil {
			return err
		}
	}

	return s.syncProducts(ctx, "category_id", category.ID)
}

// SyncSubCategoryTree refreshes the subcategory URL and its products' paths.
func (s *Service) SyncSubCategoryTree(ctx context.Context, sub *models.SubCategory) error {
	if _, err := s.UpsertSubCategoryURL(ctx, sub); err != nil {
		return err
	}
	return s.syncProducts(ctx, "subcategory_id", sub.ID)
}

func (s *Service) syncProducts(ctx context.Context, column string, id int64) error {
	products, err := s.repo.ProductsUnder(ctx, column, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	for i := range products {
		if _, err := s.UpsertProductURL(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

// URLFor returns the stored canonical URL row, or nil when none exists.
func (s *Service) URLFor(ctx context.Context, entityType enums.SEOEntityType, entityID int64) (*models.SEOURL, error) {
	row, err := s.repo.FindURL(ctx, entityType, entityID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup seo url")
	}
	return row, nil
}

// Resolve maps a full path back to its entity. found is false when no row matches.
func (s *Service) Resolve(ctx context.Context, fullPath string) (res Resolution, found bool, err error) {
	key := ""
	if s.cache != nil {
		key = s.cache.CacheKey(resolveCacheScope, fullPath)
		if raw, ok, cacheErr := s.cache.Get(ctx, key); cacheErr == nil && ok {
			if json.Unmarshal([]byte(raw), &res) == nil {
				return res, true, nil
			}
		}
	}

	row, err := s.repo.FindURLByPath(ctx, fullPath)
	if err != nil {
		if repo.IsNotFound(err) {
			return Resolution{}, false, nil
		}
		return Resolution{}, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve seo url")
	}

	res = Resolution{EntityType: row.EntityType, EntityID: row.EntityID, CanonicalURL: row.CanonicalURL}
	if s.cache != nil {
		if payload, marshalErr := json.Marshal(res); marshalErr == nil {
			if cacheErr := s.cache.Set(ctx, key, string(payload), resolveCacheTTL); cacheErr != nil {
				s.logg.Warn(s.logg.WithField(ctx, "error", cacheErr.Error()), "seo.resolve.cache_set_failed")
			}
		}
	}
	return res, true, nil
}

// DeleteURL drops the canonical URL row for an entity.
func (s *Service) DeleteURL(ctx context.Context, entityType enums.SEOEntityType, entityID int64) error {
	existing, err := s.URLFor(ctx, entityType, entityID)
	if err != nil || existing == nil {
		return err
	}
	if err := s.repo.DeleteURL(ctx, entityType, entityID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete seo url")
	}
	s.forget(ctx, existing.FullPath)
	return nil
}

func (s *Service) forget(ctx context.Context, paths ...string) {
	if s.cache == nil || len(paths) == 0 {
		return
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, s.cache.CacheKey(resolveCacheScope, p))
	}
	// A lookup racing an open transaction would re-cache the old row.
	db.AfterCommit(s.tx, func() {
		if err := s.cache.Del(ctx, keys...); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "seo.resolve.cache_evict_failed")
		}
	})
}

func mapURLWriteError(err error, path string) error {
	if db.IsUniqueViolation(err, "uq_seo_urls_full_path") || db.IsUniqueViolation(err, "seo_urls.full_path") {
		return pkgerrors.Newf(pkgerrors.CodeConflict, "URL path already in use: %s", path)
	}
	if db.IsUniqueViolation(err, "uq_seo_urls_entity") || db.IsUniqueViolation(err, "seo_urls.entity_type") {
		return pkgerrors.New(pkgerrors.CodeConflict, "URL already registered for this entity")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save seo url")
}

package seo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RegenerateResult summarizes one bulk sweep.
type RegenerateResult struct {
	EntityType enums.SEOEntityType `json:"entityType"`
	Processed  int                 `json:"processed"`
	Failed     int                 `json:"failed"`
}

// RegenerateAll recomputes the canonical URL of every entity of the given type.
// Each entity is upserted in its own transaction; failures are counted and
// logged without stopping the sweep.
func (s *Service) RegenerateAll(ctx context.Context, rawType string) (RegenerateResult, error) {
	entityType, err := enums.ParseSEOEntityType(rawType)
	if err != nil {
		return RegenerateResult{}, pkgerrors.Newf(pkgerrors.CodeValidation, "unsupported entity type %q", rawType)
	}

	return s.sweep(ctx, "seo_urls_"+entityType.String(), entityType, func(ctx context.Context, tx *Service, id int64) error {
		switch entityType {
		case enums.SEOEntityCategory:
			category, err := tx.repo.LoadCategory(ctx, id)
			if err != nil {
				return err
			}
			_, err = tx.UpsertCategoryURL(ctx, category)
			return err
		case enums.SEOEntitySubCategory:
			sub, err := tx.repo.LoadSubCategory(ctx, id)
			if err != nil {
				return err
			}
			_, err = tx.UpsertSubCategoryURL(ctx, sub)
			return err
		default:
			product, err := tx.repo.LoadProduct(ctx, id)
			if err != nil {
				return err
			}
			_, err = tx.UpsertProductURL(ctx, product)
			return err
		}
	})
}

// RegenerateAllProductMetadata runs Generate over every product. Custom rows are kept.
func (s *Service) RegenerateAllProductMetadata(ctx context.Context) (RegenerateResult, error) {
	return s.sweep(ctx, "seo_metadata_product", enums.SEOEntityProduct, func(ctx context.Context, tx *Service, id int64) error {
		product, err := tx.repo.LoadProduct(ctx, id)
		if err != nil {
			return err
		}
		_, err = tx.Generate(ctx, product)
		return err
	})
}

func (s *Service) sweep(ctx context.Context, job string, entityType enums.SEOEntityType, fn func(context.Context, *Service, int64) error) (RegenerateResult, error) {
	started := time.Now()
	result := RegenerateResult{EntityType: entityType}

	ids, err := s.repo.EntityIDs(ctx, entityType)
	if err != nil {
		return result, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list entities")
	}

	var (
		mu     sync.Mutex
		failed error
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(regenerateLimit)
	for _, id := range ids {
		id := id
		group.Go(func() error {
			err := s.db.WithTx(groupCtx, func(tx *gorm.DB) error {
				return fn(groupCtx, s.Tx(tx), id)
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				failed = multierr.Append(failed, fmt.Errorf("%s %d: %w", entityType, id, err))
				return nil
			}
			result.Processed++
			return nil
		})
	}
	_ = group.Wait()

	s.metrics.ObserveDuration(job, time.Since(started))
	s.metrics.AddItems(job, result.Processed, result.Failed)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"job":       job,
		"processed": result.Processed,
		"failed":    result.Failed,
	})
	if failed != nil {
		s.metrics.IncFailure(job)
		s.logg.Error(logCtx, "seo.regenerate.partial_failure", failed)
	} else {
		s.metrics.IncSuccess(job)
		s.logg.Info(logCtx, "seo.regenerate.complete")
	}
	return result, nil
}

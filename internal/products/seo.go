package products

import (
	"context"

	"github.com/Emman-24/backendFlorist/internal/seo"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"gorm.io/gorm"
)

// GetSEO returns the product metadata, generating it on first access.
func (s *service) GetSEO(ctx context.Context, id int64) (*seo.MetadataDTO, error) {
	row, err := s.seo.GetOrGenerate(ctx, enums.SEOEntityProduct, id, s.repo.FindDetail)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Product with id %d not found", id)
	}
	dto := seo.MetadataFromModel(row)
	return &dto, nil
}

func (s *service) UpdateSEO(ctx context.Context, id int64, input seo.CustomMetadata) (*seo.MetadataDTO, error) {
	var dto seo.MetadataDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		product, err := s.repo.WithTx(tx).FindDetail(ctx, id)
		if err != nil {
			return s.notFound(err, id)
		}
		row, err := s.seo.Tx(tx).SetCustom(ctx, product, input)
		if err != nil {
			return err
		}
		dto = seo.MetadataFromModel(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

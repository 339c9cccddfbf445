package products

import (
	"context"
	"strings"

	"github.com/Emman-24/backendFlorist/internal/repo"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"gorm.io/gorm"
)

func (s *service) AddDescription(ctx context.Context, id int64, req DescriptionRequest) (*DescriptionDTO, error) {
	if _, err := s.find(ctx, s.repo, id); err != nil {
		return nil, err
	}
	row := &models.ProductDescription{ProductID: id, Paragraph: strings.TrimSpace(req.Paragraph)}
	if req.Position != nil {
		row.Position = *req.Position
	} else {
		count, err := s.repo.CountChildren(ctx, &models.ProductDescription{}, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count descriptions")
		}
		row.Position = int(count)
	}
	if err := s.repo.CreateChild(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create description")
	}
	dto := descriptionFromModel(row)
	return &dto, nil
}

func (s *service) UpdateDescription(ctx context.Context, id, descriptionID int64, req DescriptionRequest) (*DescriptionDTO, error) {
	var row models.ProductDescription
	if err := s.repo.FindChild(ctx, &row, id, descriptionID); err != nil {
		return nil, s.childNotFound(err, "Description", descriptionID)
	}
	row.Paragraph = strings.TrimSpace(req.Paragraph)
	if req.Position != nil {
		row.Position = *req.Position
	}
	if err := s.repo.SaveChild(ctx, &row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update description")
	}
	dto := descriptionFromModel(&row)
	return &dto, nil
}

func (s *service) DeleteDescription(ctx context.Context, id, descriptionID int64) error {
	var row models.ProductDescription
	if err := s.repo.FindChild(ctx, &row, id, descriptionID); err != nil {
		return s.childNotFound(err, "Description", descriptionID)
	}
	if err := s.repo.DeleteChild(ctx, &row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete description")
	}
	return nil
}

// ReorderDescriptions sets each listed description's position to its index.
// Ids that do not belong to the product are ignored.
func (s *service) ReorderDescriptions(ctx context.Context, id int64, descriptionIDs []int64) ([]DescriptionDTO, error) {
	var rows []models.ProductDescription
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := s.find(ctx, txRepo, id); err != nil {
			return err
		}
		for position, descriptionID := range descriptionIDs {
			if err := txRepo.UpdateDescriptionPosition(ctx, id, descriptionID, position); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reorder descriptions")
			}
		}
		if err := txRepo.ChildrenOf(ctx, &rows, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list descriptions")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]DescriptionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, descriptionFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) AddVariant(ctx context.Context, id int64, req VariantRequest) (*VariantDTO, error) {
	if _, err := s.find(ctx, s.repo, id); err != nil {
		return nil, err
	}
	row := &models.ProductVariant{ProductID: id, Available: true, Status: true}
	applyVariant(row, req)
	if req.Position == nil {
		count, err := s.repo.CountChildren(ctx, &models.ProductVariant{}, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count variants")
		}
		row.Position = int(count)
	}
	if err := s.repo.CreateChild(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create variant")
	}
	dto := variantFromModel(row)
	return &dto, nil
}

func (s *service) UpdateVariant(ctx context.Context, id, variantID int64, req VariantRequest) (*VariantDTO, error) {
	var row models.ProductVariant
	if err := s.repo.FindChild(ctx, &row, id, variantID); err != nil {
		return nil, s.childNotFound(err, "Variant", variantID)
	}
	applyVariant(&row, req)
	if err := s.repo.SaveChild(ctx, &row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update variant")
	}
	dto := variantFromModel(&row)
	return &dto, nil
}

func (s *service) DeleteVariant(ctx context.Context, id, variantID int64) error {
	var row models.ProductVariant
	if err := s.repo.FindChild(ctx, &row, id, variantID); err != nil {
		return s.childNotFound(err, "Variant", variantID)
	}
	if err := s.repo.DeleteChild(ctx, &row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete variant")
	}
	return nil
}

func applyVariant(row *models.ProductVariant, req VariantRequest) {
	row.VariantType = strings.TrimSpace(req.VariantType)
	row.Name = strings.TrimSpace(req.Name)
	row.PriceAdjustment = req.PriceAdjustment.Round(2)
	row.Description = trimmedOrNil(req.Description)
	if req.Position != nil {
		row.Position = *req.Position
	}
	if req.Available != nil {
		row.Available = *req.Available
	}
}

func (s *service) notFound(err error, id int64) error {
	if repo.IsNotFound(err) {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "Product with id %d not found", id)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
}

func (s *service) childNotFound(err error, kind string, id int64) error {
	if repo.IsNotFound(err) {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "%s with id %d not found", kind, id)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup "+strings.ToLower(kind))
}

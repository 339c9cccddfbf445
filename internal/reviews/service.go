package reviews

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Emman-24/backendFlorist/internal/repo"
	"github.com/Emman-24/backendFlorist/pkg/db"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/pagination"
)

type Service interface {
	ListApproved(ctx context.Context, productID int64) (*ProductReviews, error)
	Create(ctx context.Context, productID int64, req CreateRequest) (*ReviewDTO, error)
	ListByStatus(ctx context.Context, status string, params pagination.Params) (pagination.Page[ReviewDTO], error)
	UpdateStatus(ctx context.Context, id int64, status string) (*ReviewDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo *Repository
	now  func() time.Time
}

func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: NewRepository(dbClient.DB()), now: time.Now}, nil
}

func (s *service) ListApproved(ctx context.Context, productID int64) (*ProductReviews, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByProduct(ctx, productID, enums.ReviewStatusApproved)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	summary, err := s.repo.Summary(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summarize reviews")
	}
	return &ProductReviews{Reviews: fromModels(rows), Summary: summary}, nil
}

func (s *service) Create(ctx context.Context, productID int64, req CreateRequest) (*ReviewDTO, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Rating must be between 1 and 5").
			WithDetails(map[string]string{"rating": "must be between 1 and 5"})
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID:    productID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Rating:       req.Rating,
		Comment:      req.Comment,
		Status:       enums.ReviewStatusPending,
	}
	if req.CustomerEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*req.CustomerEmail))
		if email != "" {
			review.CustomerEmail = &email
		}
	}
	if err := s.repo.DB(ctx).Create(review).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}
	dto := FromModel(review)
	return &dto, nil
}

func (s *service) ListByStatus(ctx context.Context, raw string, params pagination.Params) (pagination.Page[ReviewDTO], error) {
	status := enums.ReviewStatusPending
	if strings.TrimSpace(raw) != "" {
		parsed, err := enums.ParseReviewStatus(raw)
		if err != nil {
			return pagination.Page[ReviewDTO]{}, pkgerrors.Newf(pkgerrors.CodeValidation, "unsupported review status %q", raw)
		}
		status = parsed
	}
	rows, total, err := s.repo.ListByStatus(ctx, status, params)
	if err != nil {
		return pagination.Page[ReviewDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	return pagination.NewPage(fromModels(rows), params, total), nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, raw string) (*ReviewDTO, error) {
	status, err := enums.ParseReviewStatus(raw)
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unsupported review status %q", raw)
	}
	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	review.Status = status
	if status == enums.ReviewStatusApproved && review.PublishedAt == nil {
		at := s.now().UTC()
		review.PublishedAt = &at
	}
	if err := s.repo.DB(ctx).Save(review).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update review status")
	}
	dto := FromModel(review)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	review, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DB(ctx).Delete(review).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete review")
	}
	return nil
}

func (s *service) find(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Review with id %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup review")
	}
	return review, nil
}

func (s *service) requireProduct(ctx context.Context, productID int64) error {
	ok, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	if !ok {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "Product with id %d not found", productID)
	}
	return nil
}

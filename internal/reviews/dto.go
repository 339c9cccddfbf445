package reviews

import (
	"time"

	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
)

type CreateRequest struct {
	CustomerName  string  `json:"customerName" validate:"required,min=2,max=100"`
	CustomerEmail *string `json:"customerEmail,omitempty" validate:"omitempty,email,max=100"`
	Rating        int     `json:"rating" validate:"required,min=1,max=5"`
	Comment       *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type ReviewDTO struct {
	ID               int64              `json:"id"`
	ProductID        int64              `json:"productId"`
	CustomerName     string             `json:"customerName"`
	Rating           int                `json:"rating"`
	Comment          *string            `json:"comment,omitempty"`
	VerifiedPurchase bool               `json:"verifiedPurchase"`
	HelpfulCount     int64              `json:"helpfulCount"`
	Status           enums.ReviewStatus `json:"status"`
	PublishedAt      *time.Time         `json:"publishedAt,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// Summary aggregates the approved ratings of a product.
type Summary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type ProductReviews struct {
	Reviews []ReviewDTO `json:"reviews"`
	Summary Summary     `json:"summary"`
}

// FromModel omits the customer email, which is kept for moderation only.
func FromModel(r *models.Review) ReviewDTO {
	return ReviewDTO{
		ID:               r.ID,
		ProductID:        r.ProductID,
		CustomerName:     r.CustomerName,
		Rating:           r.Rating,
		Comment:          r.Comment,
		VerifiedPurchase: r.VerifiedPurchase,
		HelpfulCount:     r.HelpfulCount,
		Status:           r.Status,
		PublishedAt:      r.PublishedAt,
		CreatedAt:        r.CreatedAt,
	}
}

func fromModels(rows []models.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

package models

import (
	"time"

	"github.com/Emman-24/backendFlorist/pkg/enums"
)

type Review struct {
	ID               int64              `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID        int64              `gorm:"column:product_id;not null;index"`
	CustomerName     string             `gorm:"column:customer_name;type:varchar(100);not null"`
	CustomerEmail    *string            `gorm:"column:customer_email;type:varchar(100)"`
	Rating           int                `gorm:"column:rating;not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	Comment          *string            `gorm:"column:comment;type:text"`
	VerifiedPurchase bool               `gorm:"column:verified_purchase;not null"`
	HelpfulCount     int64              `gorm:"column:helpful_count;not null"`
	Status           enums.ReviewStatus `gorm:"column:status;type:varchar(20);not null;index"`
	PublishedAt      *time.Time         `gorm:"column:published_at"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Review) TableName() string { return "reviews" }

package models

import (
	"time"

	"github.com/Emman-24/backendFlorist/pkg/enums"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing placed under one category and one of its subcategories.
type Product struct {
	ID            int64                `gorm:"column:id;primaryKey;autoIncrement"`
	Title         string               `gorm:"column:title;type:varchar(200);not null"`
	Slug          string               `gorm:"column:slug;type:varchar(200);not null;uniqueIndex:uq_products_slug"`
	Status        bool                 `gorm:"column:status;not null"`
	Price         decimal.Decimal      `gorm:"column:price;type:numeric(12,2);not null"`
	StockStatus   enums.StockStatus    `gorm:"column:stock_status;type:varchar(20);not null"`
	Seasonal      bool                 `gorm:"column:seasonal;not null"`
	Featured      bool                 `gorm:"column:featured;not null"`
	FacebookURL   *string              `gorm:"column:facebook_url;type:varchar(500)"`
	InstagramURL  *string              `gorm:"column:instagram_url;type:varchar(500)"`
	Views         int64                `gorm:"column:views;not null"`
	CategoryID    int64                `gorm:"column:category_id;not null;index"`
	Category      *Category            `gorm:"foreignKey:CategoryID"`
	SubCategoryID int64                `gorm:"column:subcategory_id;not null;index"`
	SubCategory   *SubCategory         `gorm:"foreignKey:SubCategoryID"`
	Tags          []Tag                `gorm:"many2many:product_tags;constraint:OnDelete:CASCADE"`
	Descriptions  []ProductDescription `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Gallery       []ProductGallery     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants      []ProductVariant     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }

// PrimaryImage returns the gallery image flagged primary, falling back to the first by position.
func (p Product) PrimaryImage() *ProductGallery {
	var first *ProductGallery
	for i := range p.Gallery {
		img := &p.Gallery[i]
		if img.IsPrimary {
			return img
		}
		if first == nil || img.Position < first.Position {
			first = img
		}
	}
	return first
}

type ProductDescription struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64     `gorm:"column:product_id;not null;index"`
	Paragraph string    `gorm:"column:paragraph;type:text;not null"`
	Position  int       `gorm:"column:position;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductDescription) TableName() string { return "product_description" }

// ProductGallery is an uploaded image of a product.
type ProductGallery struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID    int64     `gorm:"column:product_id;not null;index"`
	OriginalName string    `gorm:"column:original_name;type:varchar(255);not null"`
	StoredName   string    `gorm:"column:stored_name;type:varchar(500);not null"`
	URL          string    `gorm:"column:url;type:varchar(1000);not null"`
	ThumbnailURL *string   `gorm:"column:thumbnail_url;type:varchar(1000)"`
	MediumURL    *string   `gorm:"column:medium_url;type:varchar(1000)"`
	MimeType     string    `gorm:"column:mime_type;type:varchar(100);not null"`
	Size         int64     `gorm:"column:size;not null"`
	AltText      string    `gorm:"column:alt_text;type:varchar(255)"`
	IsPrimary    bool      `gorm:"column:is_primary;not null"`
	Position     int       `gorm:"column:position;not null"`
	Seasonal     bool      `gorm:"column:seasonal;not null"`
	Status       bool      `gorm:"column:status;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductGallery) TableName() string { return "product_gallery" }

type ProductVariant struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID       int64           `gorm:"column:product_id;not null;index"`
	VariantType     string          `gorm:"column:variant_type;type:varchar(50);not null"`
	Name            string          `gorm:"column:name;type:varchar(100);not null"`
	PriceAdjustment decimal.Decimal `gorm:"column:price_adjustment;type:numeric(12,2);not null"`
	Description     *string         `gorm:"column:description;type:text"`
	Position        int             `gorm:"column:position;not null"`
	Available       bool            `gorm:"column:available;not null"`
	Status          bool            `gorm:"column:status;not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductVariant) TableName() string { return "product_variant" }

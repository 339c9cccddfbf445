package products

import (
	"sort"
	"time"

	"github.com/Emman-24/backendFlorist/internal/reviews"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	"github.com/Emman-24/backendFlorist/pkg/storage"
	"github.com/shopspring/decimal"
)

// ProductRequest is the create and update payload. Price is checked by the service
// because validator tags do not apply to decimal values.
type ProductRequest struct {
	Title         string            `json:"title" validate:"required,min=3,max=200"`
	Slug          string            `json:"slug" validate:"required,max=200,slug"`
	Price         decimal.Decimal   `json:"price"`
	StockStatus   enums.StockStatus `json:"stockStatus,omitempty" validate:"omitempty,oneof=AVAILABLE SEASONAL OUT_OF_STOCK"`
	Seasonal      bool              `json:"seasonal"`
	Featured      bool              `json:"featured"`
	FacebookURL   *string           `json:"facebookUrl,omitempty" validate:"omitempty,http_url,max=500"`
	InstagramURL  *string           `json:"instagramUrl,omitempty" validate:"omitempty,http_url,max=500"`
	CategoryID    int64             `json:"categoryId" validate:"required,min=1"`
	SubCategoryID int64             `json:"subcategoryId" validate:"required,min=1"`
	Status        *bool             `json:"status,omitempty"`
	TagIDs        []int64           `json:"tagIds,omitempty"`
}

type TagsRequest struct {
	TagIDs []int64 `json:"tagIds" validate:"required,min=1"`
}

type DescriptionRequest struct {
	Paragraph string `json:"paragraph" validate:"required"`
	Position  *int   `json:"position,omitempty" validate:"omitempty,gte=0"`
}

type DescriptionOrderRequest struct {
	DescriptionIDs []int64 `json:"descriptionIds" validate:"required,min=1"`
}

type VariantRequest struct {
	VariantType     string          `json:"variantType" validate:"required,max=50"`
	Name            string          `json:"name" validate:"required,max=100"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
	Description     *string         `json:"description,omitempty"`
	Position        *int            `json:"position,omitempty" validate:"omitempty,gte=0"`
	Available       *bool           `json:"available,omitempty"`
}

// ImageUpload is a decoded multipart image with its form fields.
type ImageUpload struct {
	File      storage.File
	AltText   *string
	IsPrimary bool
	Seasonal  bool
}

// Filter narrows the public listing. Nil fields are ignored.
type Filter struct {
	CategoryID    *int64
	SubCategoryID *int64
	Featured      *bool
	Seasonal      *bool
}

type CategoryRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Route string `json:"route"`
}

type TagRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Route string `json:"route"`
}

type ImageDTO struct {
	ID           int64   `json:"id"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
	MediumURL    *string `json:"mediumUrl,omitempty"`
	AltText      string  `json:"altText"`
	IsPrimary    bool    `json:"isPrimary"`
	Position     int     `json:"position"`
	Seasonal     bool    `json:"seasonal"`
	MimeType     string  `json:"mimeType"`
	Size         int64   `json:"size"`
}

type DescriptionDTO struct {
	ID        int64  `json:"id"`
	Paragraph string `json:"paragraph"`
	Position  int    `json:"position"`
}

type VariantDTO struct {
	ID              int64           `json:"id"`
	VariantType     string          `json:"variantType"`
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
	Description     *string         `json:"description,omitempty"`
	Position        int             `json:"position"`
	Available       bool            `json:"available"`
}

// ListItemDTO is the compact product card returned by listings.
type ListItemDTO struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	Slug         string            `json:"slug"`
	Price        decimal.Decimal   `json:"price"`
	StockStatus  enums.StockStatus `json:"stockStatus"`
	Seasonal     bool              `json:"seasonal"`
	Featured     bool              `json:"featured"`
	Views        int64             `json:"views"`
	FullPath     string            `json:"fullPath"`
	PrimaryImage *ImageDTO         `json:"primaryImage,omitempty"`
	Category     *CategoryRef      `json:"category,omitempty"`
	SubCategory  *CategoryRef      `json:"subcategory,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

type ProductDTO struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	Slug         string            `json:"slug"`
	Status       bool              `json:"status"`
	Price        decimal.Decimal   `json:"price"`
	StockStatus  enums.StockStatus `json:"stockStatus"`
	Seasonal     bool              `json:"seasonal"`
	Featured     bool              `json:"featured"`
	FacebookURL  *string           `json:"facebookUrl,omitempty"`
	InstagramURL *string           `json:"instagramUrl,omitempty"`
	Views        int64             `json:"views"`
	FullPath     string            `json:"fullPath"`
	MetaTitle    string            `json:"metaTitle,omitempty"`
	MetaDesc     string            `json:"metaDescription,omitempty"`
	Category     *CategoryRef      `json:"category,omitempty"`
	SubCategory  *CategoryRef      `json:"subcategory,omitempty"`
	Tags         []TagRef          `json:"tags"`
	Descriptions []DescriptionDTO  `json:"descriptions"`
	Gallery      []ImageDTO        `json:"gallery"`
	Variants     []VariantDTO      `json:"variants"`
	Rating       reviews.Summary   `json:"rating"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func categoryRef(c *models.Category) *CategoryRef {
	if c == nil {
		return nil
	}
	return &CategoryRef{ID: c.ID, Name: c.Text, Route: c.Route}
}

func subCategoryRef(s *models.SubCategory) *CategoryRef {
	if s == nil {
		return nil
	}
	return &CategoryRef{ID: s.ID, Name: s.Text, Route: s.Route}
}

func imageFromModel(g *models.ProductGallery) ImageDTO {
	return ImageDTO{
		ID:           g.ID,
		URL:          g.URL,
		ThumbnailURL: g.ThumbnailURL,
		MediumURL:    g.MediumURL,
		AltText:      g.AltText,
		IsPrimary:    g.IsPrimary,
		Position:     g.Position,
		Seasonal:     g.Seasonal,
		MimeType:     g.MimeType,
		Size:         g.Size,
	}
}

func descriptionFromModel(d *models.ProductDescription) DescriptionDTO {
	return DescriptionDTO{ID: d.ID, Paragraph: d.Paragraph, Position: d.Position}
}

func variantFromModel(v *models.ProductVariant) VariantDTO {
	return VariantDTO{
		ID:              v.ID,
		VariantType:     v.VariantType,
		Name:            v.Name,
		PriceAdjustment: v.PriceAdjustment,
		Description:     v.Description,
		Position:        v.Position,
		Available:       v.Available,
	}
}

func listItemFromModel(p *models.Product, fullPath string) ListItemDTO {
	item := ListItemDTO{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Price:       p.Price,
		StockStatus: p.StockStatus,
		Seasonal:    p.Seasonal,
		Featured:    p.Featured,
		Views:       p.Views,
		FullPath:    fullPath,
		Category:    categoryRef(p.Category),
		SubCategory: subCategoryRef(p.SubCategory),
		CreatedAt:   p.CreatedAt,
	}
	if img := p.PrimaryImage(); img != nil {
		dto := imageFromModel(img)
		item.PrimaryImage = &dto
	}
	return item
}

// FromModel expects the product preloaded with its category, subcategory, tags and children.
func FromModel(p *models.Product, fullPath string, rating reviews.Summary) ProductDTO {
	dto := ProductDTO{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Status:       p.Status,
		Price:        p.Price,
		StockStatus:  p.StockStatus,
		Seasonal:     p.Seasonal,
		Featured:     p.Featured,
		FacebookURL:  p.FacebookURL,
		InstagramURL: p.InstagramURL,
		Views:        p.Views,
		FullPath:     fullPath,
		Category:     categoryRef(p.Category),
		SubCategory:  subCategoryRef(p.SubCategory),
		Tags:         make([]TagRef, 0, len(p.Tags)),
		Descriptions: make([]DescriptionDTO, 0, len(p.Descriptions)),
		Gallery:      make([]ImageDTO, 0, len(p.Gallery)),
		Variants:     make([]VariantDTO, 0, len(p.Variants)),
		Rating:       rating,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	for i := range p.Tags {
		dto.Tags = append(dto.Tags, TagRef{ID: p.Tags[i].ID, Name: p.Tags[i].Text, Route: p.Tags[i].Route})
	}
	for i := range p.Descriptions {
		dto.Descriptions = append(dto.Descriptions, descriptionFromModel(&p.Descriptions[i]))
	}
	for i := range p.Gallery {
		dto.Gallery = append(dto.Gallery, imageFromModel(&p.Gallery[i]))
	}
	for i := range p.Variants {
		dto.Variants = append(dto.Variants, variantFromModel(&p.Variants[i]))
	}
	sort.SliceStable(dto.Tags, func(i, j int) bool { return dto.Tags[i].ID < dto.Tags[j].ID })
	return dto
}

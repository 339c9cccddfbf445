package seo

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Emman-24/backendFlorist/internal/repo"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
)

const (
	brandName        = "Floristería Akasia"
	priceCurrency    = "COP"
	placeholderImage = "/images/placeholder-product.jpg"

	maxTitleRunes       = 60
	maxDescriptionRunes = 320
)

// CustomMetadata carries operator supplied overrides. Nil fields keep their current value.
type CustomMetadata struct {
	Title       *string `json:"metaTitle,omitempty" validate:"omitempty,max=60"`
	Description *string `json:"metaDescription,omitempty" validate:"omitempty,max=320"`
	Keywords    *string `json:"metaKeywords,omitempty" validate:"omitempty,max=500"`
}

type MetadataDTO struct {
	EntityType      enums.SEOEntityType `json:"entityType"`
	EntityID        int64               `json:"entityId"`
	MetaTitle       string              `json:"metaTitle"`
	MetaDescription string              `json:"metaDescription"`
	MetaKeywords    *string             `json:"metaKeywords,omitempty"`
	SchemaMarkup    string              `json:"schemaMarkup"`
	IsCustom        bool                `json:"isCustom"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func MetadataFromModel(m *models.SEOMetadata) MetadataDTO {
	return MetadataDTO{
		EntityType:      m.EntityType,
		EntityID:        m.EntityID,
		MetaTitle:       m.MetaTitle,
		MetaDescription: m.MetaDescription,
		MetaKeywords:    m.MetaKeywords,
		SchemaMarkup:    m.SchemaMarkup,
		IsCustom:        m.IsCustom,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ProductLookup loads a product with its category, subcategory and gallery.
type ProductLookup func(ctx context.Context, id int64) (*models.Product, error)

// Generate computes metadata for a product. Custom rows are returned untouched.
func (s *Service) Generate(ctx context.Context, product *models.Product) (*models.SEOMetadata, error) {
	existing, err := s.findMetadata(ctx, enums.SEOEntityProduct, product.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IsCustom {
		return existing, nil
	}

	row := existing
	if row == nil {
		row = &models.SEOMetadata{EntityType: enums.SEOEntityProduct, EntityID: product.ID}
	}
	row.MetaTitle = metaTitle(product)
	row.MetaDescription = metaDescription(product)
	row.SchemaMarkup = s.schemaMarkup(product)
	row.IsCustom = false

	if err := s.repo.SaveMetadata(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save seo metadata")
	}
	return row, nil
}

// SetCustom stores operator overrides and marks the row custom. The schema
// markup is always rebuilt from the current product.
func (s *Service) SetCustom(ctx context.Context, product *models.Product, input CustomMetadata) (*models.SEOMetadata, error) {
	row, err := s.findMetadata(ctx, enums.SEOEntityProduct, product.ID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		row = &models.SEOMetadata{
			EntityType:      enums.SEOEntityProduct,
			EntityID:        product.ID,
			MetaTitle:       metaTitle(product),
			MetaDescription: metaDescription(product),
		}
	}

	if input.Title != nil {
		row.MetaTitle = truncateRunes(strings.TrimSpace(*input.Title), maxTitleRunes)
	}
	if input.Description != nil {
		row.MetaDescription = truncateRunes(strings.TrimSpace(*input.Description), maxDescriptionRunes)
	}
	if input.Keywords != nil {
		keywords := strings.TrimSpace(*input.Keywords)
		row.MetaKeywords = &keywords
	}
	row.SchemaMarkup = s.schemaMarkup(product)
	row.IsCustom = true

	if err := s.repo.SaveMetadata(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save seo metadata")
	}
	return row, nil
}

// GetOrGenerate returns the stored row, generating one on demand for products.
// A nil row with a nil error means the entity has no metadata.
func (s *Service) GetOrGenerate(ctx context.Context, entityType enums.SEOEntityType, entityID int64, lookup ProductLookup) (*models.SEOMetadata, error) {
	existing, err := s.findMetadata(ctx, entityType, entityID)
	if err != nil || existing != nil {
		return existing, err
	}
	if entityType != enums.SEOEntityProduct {
		return nil, nil
	}

	if lookup == nil {
		lookup = s.repo.LoadProduct
	}
	product, err := lookup(ctx, entityID)
	if err != nil {
		if repo.IsNotFound(err) || pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return s.Generate(ctx, product)
}

// MetadataFor returns the stored row without generating one. Nil means none exists.
func (s *Service) MetadataFor(ctx context.Context, entityType enums.SEOEntityType, entityID int64) (*models.SEOMetadata, error) {
	return s.findMetadata(ctx, entityType, entityID)
}

// RefreshProduct upserts the product URL and regenerates its metadata.
func (s *Service) RefreshProduct(ctx context.Context, product *models.Product) error {
	if _, err := s.UpsertProductURL(ctx, product); err != nil {
		return err
	}
	_, err := s.Generate(ctx, product)
	return err
}

// DeleteProductSEO removes both the canonical URL and the metadata of a product.
func (s *Service) DeleteProductSEO(ctx context.Context, productID int64) error {
	if err := s.DeleteURL(ctx, enums.SEOEntityProduct, productID); err != nil {
		return err
	}
	if err := s.repo.DeleteMetadata(ctx, enums.SEOEntityProduct, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete seo metadata")
	}
	return nil
}

func (s *Service) findMetadata(ctx context.Context, entityType enums.SEOEntityType, entityID int64) (*models.SEOMetadata, error) {
	row, err := s.repo.FindMetadata(ctx, entityType, entityID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup seo metadata")
	}
	return row, nil
}

// titleSuffixes are appended to the product title in order while they fit.
var titleSuffixes = []string{" - " + brandName, " Pereira", " | Entrega a Domicilio"}

// metaTitle keeps the product title whole and drops suffix segments from the end
// until the result fits. The title itself is only cut when it alone is too long.
func metaTitle(product *models.Product) string {
	title := strings.TrimSpace(product.Title)
	for n := len(titleSuffixes); n > 0; n-- {
		candidate := title + strings.Join(titleSuffixes[:n], "")
		if utf8.RuneCountInString(candidate) <= maxTitleRunes {
			return candidate
		}
	}
	return truncateRunes(title, maxTitleRunes)
}

func metaDescription(product *models.Product) string {
	category := ""
	if product.Category != nil {
		category = product.Category.Text
	}
	text := "Compra " + product.Title + " en " + brandName + ". " +
		"Arreglos florales de " + category + " frescos con entrega en Pereira, " +
		"Dosquebradas y La Virginia. Desde $" + product.Price.StringFixed(2) + " COP. ¡Ordena ahora!"
	return truncateRunes(text, maxDescriptionRunes)
}

type productSchema struct {
	Context     string      `json:"@context"`
	Type        string      `json:"@type"`
	Name        string      `json:"name"`
	Image       string      `json:"image"`
	Description string      `json:"description"`
	Brand       brandSchema `json:"brand"`
	Offers      offerSchema `json:"offers"`
}

type brandSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type offerSchema struct {
	Type          string `json:"@type"`
	URL           string `json:"url"`
	PriceCurrency string `json:"priceCurrency"`
	Price         string `json:"price"`
	Availability  string `json:"availability"`
}

func (s *Service) schemaMarkup(product *models.Product) string {
	image := s.backendURL + placeholderImage
	if primary := product.PrimaryImage(); primary != nil && primary.URL != "" {
		image = primary.URL
	}

	payload, err := json.Marshal(productSchema{
		Context:     "https://schema.org/",
		Type:        "Product",
		Name:        product.Title,
		Image:       image,
		Description: metaDescription(product),
		Brand:       brandSchema{Type: "Brand", Name: brandName},
		Offers: offerSchema{
			Type:          "Offer",
			URL:           s.CanonicalURL(PathForProduct(product)),
			PriceCurrency: priceCurrency,
			Price:         product.Price.StringFixed(2),
			Availability:  product.StockStatus.SchemaAvailability(),
		},
	})
	if err != nil {
		return "{}"
	}
	return string(payload)
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit]))
}

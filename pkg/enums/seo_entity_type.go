package enums

import (
	"fmt"
	"strings"
)

// SEOEntityType identifies the catalog entity an SEO row belongs to.
type SEOEntityType string

const (
	SEOEntityCategory    SEOEntityType = "category"
	SEOEntitySubCategory SEOEntityType = "subcategory"
	SEOEntityProduct     SEOEntityType = "product"
)

var validSEOEntityTypes = []SEOEntityType{
	SEOEntityCategory,
	SEOEntitySubCategory,
	SEOEntityProduct,
}

// String implements fmt.Stringer.
func (t SEOEntityType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known SEOEntityType.
func (t SEOEntityType) IsValid() bool {
	for _, candidate := range validSEOEntityTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseSEOEntityType normalizes plural and hyphenated aliases ("products", "sub-category").
func ParseSEOEntityType(value string) (SEOEntityType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	switch normalized {
	case "category", "categories":
		return SEOEntityCategory, nil
	case "subcategory", "subcategories":
		return SEOEntitySubCategory, nil
	case "product", "products":
		return SEOEntityProduct, nil
	}
	return "", fmt.Errorf("invalid seo entity type %q", value)
}

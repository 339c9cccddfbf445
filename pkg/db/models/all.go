package models

// All lists every persisted model, in dependency order, for AutoMigrate in tests and sqlite dev setups.
func All() []any {
	return []any{
		&Role{},
		&User{},
		&Category{},
		&SubCategory{},
		&Tag{},
		&Product{},
		&ProductDescription{},
		&ProductGallery{},
		&ProductVariant{},
		&Review{},
		&FAQ{},
		&SEOURL{},
		&SEOMetadata{},
	}
}

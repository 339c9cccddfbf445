package models

import (
	"time"

	"github.com/Emman-24/backendFlorist/pkg/enums"
)

// SEOURL is the canonical path index. Both (entity_type, entity_id) and full_path are unique.
type SEOURL struct {
	ID           int64               `gorm:"column:id;primaryKey;autoIncrement"`
	EntityType   enums.SEOEntityType `gorm:"column:entity_type;type:varchar(20);not null;uniqueIndex:uq_seo_urls_entity,priority:1"`
	EntityID     int64               `gorm:"column:entity_id;not null;uniqueIndex:uq_seo_urls_entity,priority:2"`
	Slug         string              `gorm:"column:slug;type:varchar(200);not null"`
	FullPath     string              `gorm:"column:full_path;type:varchar(500);not null;uniqueIndex:uq_seo_urls_full_path"`
	CanonicalURL string              `gorm:"column:canonical_url;type:varchar(1000);not null"`
	Status       bool                `gorm:"column:status;not null"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (SEOURL) TableName() string { return "seo_urls" }

// SEOMetadata holds generated or custom search metadata for one entity.
type SEOMetadata struct {
	ID              int64               `gorm:"column:id;primaryKey;autoIncrement"`
	EntityType      enums.SEOEntityType `gorm:"column:entity_type;type:varchar(20);not null;uniqueIndex:uq_seo_metadata_entity,priority:1"`
	EntityID        int64               `gorm:"column:entity_id;not null;uniqueIndex:uq_seo_metadata_entity,priority:2"`
	MetaTitle       string              `gorm:"column:meta_title;type:varchar(60);not null"`
	MetaDescription string              `gorm:"column:meta_description;type:varchar(320);not null"`
	MetaKeywords    *string             `gorm:"column:meta_keywords;type:varchar(500)"`
	SchemaMarkup    string              `gorm:"column:schema_markup;type:text;not null"`
	IsCustom        bool                `gorm:"column:is_custom;not null"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (SEOMetadata) TableName() string { return "seo_metadata" }

package models

import "time"

// Category is the top level of the catalog hierarchy.
type Category struct {
	ID            int64         `gorm:"column:id;primaryKey;autoIncrement"`
	Text          string        `gorm:"column:text;type:varchar(100);not null"`
	Route         string        `gorm:"column:route;type:varchar(100);not null;uniqueIndex:uq_categories_route"`
	Description   *string       `gorm:"column:description;type:text"`
	Position      int           `gorm:"column:position;not null"`
	Status        bool          `gorm:"column:status;not null"`
	SubCategories []SubCategory `gorm:"foreignKey:CategoryID"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string { return "categories" }

// SubCategory belongs to exactly one Category; its route is unique within the category.
type SubCategory struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Text        string    `gorm:"column:text;type:varchar(100);not null"`
	Description *string   `gorm:"column:description;type:text"`
	Position    int       `gorm:"column:position;not null"`
	Route       string    `gorm:"column:route;type:varchar(100);not null;uniqueIndex:uq_sub_category_category_route,priority:2"`
	Status      bool      `gorm:"column:status;not null"`
	CategoryID  int64     `gorm:"column:category_id;not null;index;uniqueIndex:uq_sub_category_category_route,priority:1"`
	Category    *Category `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SubCategory) TableName() string { return "sub_category" }

package models

import "time"

type Tag struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Text      string    `gorm:"column:text;type:varchar(100);not null"`
	Route     string    `gorm:"column:route;type:varchar(100);not null;uniqueIndex:uq_tags_route"`
	Status    bool      `gorm:"column:status;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Tag) TableName() string { return "tags" }

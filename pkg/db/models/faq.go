package models

import "time"

// FAQ is a storefront question and answer entry.
type FAQ struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Question     string    `gorm:"column:question;type:varchar(500);not null"`
	Answer       string    `gorm:"column:answer;type:text;not null"`
	Category     *string   `gorm:"column:category;type:varchar(100);index"`
	Position     int       `gorm:"column:position;not null"`
	Views        int64     `gorm:"column:views;not null"`
	HelpfulCount int64     `gorm:"column:helpful_count;not null"`
	Status       bool      `gorm:"column:status;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (FAQ) TableName() string { return "faqs" }

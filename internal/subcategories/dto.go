package subcategories

import (
	"time"

	"github.com/Emman-24/backendFlorist/pkg/db/models"
)

type SubCategoryRequest struct {
	Text        string  `json:"text" validate:"required,min=2,max=100"`
	Route       string  `json:"route" validate:"required,max=100,slug"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position" validate:"gte=0"`
	Status      *bool   `json:"status,omitempty"`
	CategoryID  int64   `json:"categoryId" validate:"required,min=1"`
}

// CategoryRef is the compact parent reference embedded in responses.
type CategoryRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Route string `json:"route"`
}

type SubCategoryDTO struct {
	ID          int64        `json:"id"`
	Text        string       `json:"text"`
	Route       string       `json:"route"`
	Description *string      `json:"description,omitempty"`
	Position    int          `json:"position"`
	Status      bool         `json:"status"`
	CategoryID  int64        `json:"categoryId"`
	Category    *CategoryRef `json:"category,omitempty"`
	FullPath    string       `json:"fullPath"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func FromModel(sub *models.SubCategory, fullPath string) SubCategoryDTO {
	dto := SubCategoryDTO{
		ID:          sub.ID,
		Text:        sub.Text,
		Route:       sub.Route,
		Description: sub.Description,
		Position:    sub.Position,
		Status:      sub.Status,
		CategoryID:  sub.CategoryID,
		FullPath:    fullPath,
		CreatedAt:   sub.CreatedAt,
		UpdatedAt:   sub.UpdatedAt,
	}
	if sub.Category != nil {
		dto.Category = &CategoryRef{ID: sub.Category.ID, Name: sub.Category.Text, Route: sub.Category.Route}
	}
	return dto
}

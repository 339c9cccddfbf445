package categories

import (
	"time"

	"github.com/Emman-24/backendFlorist/pkg/db/models"
)

// CategoryRequest is the create/update payload.
type CategoryRequest struct {
	Text        string  `json:"text" validate:"required,min=2,max=100"`
	Route       string  `json:"route" validate:"required,max=100,slug"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position" validate:"gte=0"`
	Status      *bool   `json:"status,omitempty"`
}

// ReorderRequest maps category ids to their new positions.
type ReorderRequest struct {
	Positions map[int64]int `json:"positions" validate:"required,min=1"`
}

type CategoryDTO struct {
	ID          int64     `json:"id"`
	Text        string    `json:"text"`
	Route       string    `json:"route"`
	Description *string   `json:"description,omitempty"`
	Position    int       `json:"position"`
	Status      bool      `json:"status"`
	FullPath    string    `json:"fullPath"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StatsDTO counts the children of a category.
type StatsDTO struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	SubCategories       int64  `json:"subcategories"`
	ActiveSubCategories int64  `json:"activeSubcategories"`
	Products            int64  `json:"products"`
	ActiveProducts      int64  `json:"activeProducts"`
}

func FromModel(c *models.Category, fullPath string) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Text:        c.Text,
		Route:       c.Route,
		Description: c.Description,
		Position:    c.Position,
		Status:      c.Status,
		FullPath:    fullPath,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

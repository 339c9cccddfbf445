package tags

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Emman-24/backendFlorist/internal/repo"
	"github.com/Emman-24/backendFlorist/pkg/db"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"gorm.io/gorm"
)

type TagRequest struct {
	Text   string `json:"text" validate:"required,min=2,max=100"`
	Route  string `json:"route" validate:"required,max=100,slug"`
	Status *bool  `json:"status,omitempty"`
}

type TagDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Route     string    `json:"route"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromModel(t *models.Tag) TagDTO {
	return TagDTO{ID: t.ID, Name: t.Text, Route: t.Route, Status: t.Status, CreatedAt: t.CreatedAt}
}

type Service interface {
	ListActive(ctx context.Context) ([]TagDTO, error)
	GetByRoute(ctx context.Context, route string) (*TagDTO, error)
	Create(ctx context.Context, req TagRequest) (*TagDTO, error)
	Update(ctx context.Context, id int64, req TagRequest) (*TagDTO, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

// FindByIDs returns the tags among ids that exist.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) ([]models.Tag, error) {
	var rows []models.Tag
	if len(ids) == 0 {
		return rows, nil
	}
	err := r.DB(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error
	return rows, err
}

type service struct {
	repo *Repository
}

func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: NewRepository(dbClient.DB())}, nil
}

func (s *service) ListActive(ctx context.Context) ([]TagDTO, error) {
	var rows []models.Tag
	if err := s.repo.DB(ctx).Where("status = ?", true).Order("text ASC").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tags")
	}
	out := make([]TagDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) GetByRoute(ctx context.Context, route string) (*TagDTO, error) {
	var tag models.Tag
	if err := s.repo.DB(ctx).Where("route = ?", strings.TrimSpace(route)).First(&tag).Error; err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Tag with route %s not found", route)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup tag")
	}
	dto := FromModel(&tag)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, req TagRequest) (*TagDTO, error) {
	tag := &models.Tag{Status: true}
	apply(tag, req)
	if err := s.repo.DB(ctx).Create(tag).Error; err != nil {
		return nil, mapWriteError(err, tag.Route)
	}
	dto := FromModel(tag)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, req TagRequest) (*TagDTO, error) {
	tag, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(tag, req)
	if err := s.repo.DB(ctx).Save(tag).Error; err != nil {
		return nil, mapWriteError(err, tag.Route)
	}
	dto := FromModel(tag)
	return &dto, nil
}

// Delete removes the tag and its product links.
func (s *service) Delete(ctx context.Context, id int64) error {
	tag, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unlink tag")
		}
		if err := tx.Delete(tag).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete tag")
		}
		return nil
	})
}

func (s *service) find(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	if err := s.repo.DB(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Tag with id %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup tag")
	}
	return &tag, nil
}

func apply(tag *models.Tag, req TagRequest) {
	tag.Text = strings.TrimSpace(req.Text)
	tag.Route = strings.ToLower(strings.TrimSpace(req.Route))
	if req.Status != nil {
		tag.Status = *req.Status
	}
}

func mapWriteError(err error, route string) error {
	if db.IsUniqueViolation(err, "uq_tags_route") || db.IsUniqueViolation(err, "tags.route") {
		return pkgerrors.Newf(pkgerrors.CodeConflict, "Tag route %s already exists", route)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save tag")
}

package faqs

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

type FAQRequest struct {
	Question string  `json:"question" validate:"required,min=5,max=500"`
	Answer   string  `json:"answer" validate:"required"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Position int     `json:"position" validate:"gte=0"`
	Status   *bool   `json:"status,omitempty"`
}

type FAQDTO struct {
	ID           int64     `json:"id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	Category     *string   `json:"category,omitempty"`
	Position     int       `json:"position"`
	Views        int64     `json:"views"`
	HelpfulCount int64     `json:"helpfulCount"`
	Status       bool      `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Filter narrows FAQ listings. A nil Status means any status.
type Filter struct {
	Search   string
	Category string
	Status   *bool
}

func FromModel(f *models.FAQ) FAQDTO {
	return FAQDTO{
		ID:           f.ID,
		Question:     f.Question,
		Answer:       f.Answer,
		Category:     f.Category,
		Position:     f.Position,
		Views:        f.Views,
		HelpfulCount: f.HelpfulCount,
		Status:       f.Status,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

type Service interface {
	ListPublic(ctx context.Context, category, search string) ([]FAQDTO, error)
	ListAdmin(ctx context.Context, filter Filter) ([]FAQDTO, error)
	Create(ctx context.Context, req FAQRequest) (*FAQDTO, error)
	Update(ctx context.Context, id int64, req FAQRequest) (*FAQDTO, error)
	Delete(ctx context.Context, id int64) error
	ToggleStatus(ctx context.Context, id int64) (*FAQDTO, error)
	IncrementViews(ctx context.Context, id int64) error
	IncrementHelpful(ctx context.Context, id int64) error
}

type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func (r *Repository) Search(ctx context.Context, filter Filter) ([]models.FAQ, error) {
	query := r.DB(ctx).Model(&models.FAQ{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(question) LIKE ? OR LOWER(answer) LIKE ?", like, like)
	}
	var rows []models.FAQ
	err := query.Order("position ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

// Increment bumps a counter column; it reports false when the row does not exist.
func (r *Repository) Increment(ctx context.Context, id int64, column string) (bool, error) {
	res := r.DB(ctx).
		Model(&models.FAQ{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	return res.RowsAffected > 0, res.Error
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

func (s *service) ListPublic(ctx context.Context, category, search string) ([]FAQDTO, error) {
	active := true
	return s.list(ctx, Filter{Search: search, Category: category, Status: &active})
}

func (s *service) ListAdmin(ctx context.Context, filter Filter) ([]FAQDTO, error) {
	return s.list(ctx, filter)
}

func (s *service) list(ctx context.Context, filter Filter) ([]FAQDTO, error) {
	rows, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list faqs")
	}
	out := make([]FAQDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, req FAQRequest) (*FAQDTO, error) {
	faq := &models.FAQ{Status: true}
	apply(faq, req)
	if err := s.repo.DB(ctx).Create(faq).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create faq")
	}
	dto := FromModel(faq)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, req FAQRequest) (*FAQDTO, error) {
	faq, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(faq, req)
	if err := s.repo.DB(ctx).Save(faq).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update faq")
	}
	dto := FromModel(faq)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	faq, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DB(ctx).Delete(faq).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete faq")
	}
	return nil
}

func (s *service) ToggleStatus(ctx context.Context, id int64) (*FAQDTO, error) {
	faq, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	faq.Status = !faq.Status
	if err := s.repo.DB(ctx).Model(faq).UpdateColumn("status", faq.Status).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle faq status")
	}
	dto := FromModel(faq)
	return &dto, nil
}

func (s *service) IncrementViews(ctx context.Context, id int64) error {
	return s.increment(ctx, id, "views")
}

func (s *service) IncrementHelpful(ctx context.Context, id int64) error {
	return s.increment(ctx, id, "helpful_count")
}

func (s *service) increment(ctx context.Context, id int64, column string) error {
	ok, err := s.repo.Increment(ctx, id, column)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update faq counter")
	}
	if !ok {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "FAQ with id %d not found", id)
	}
	return nil
}

func (s *service) find(ctx context.Context, id int64) (*models.FAQ, error) {
	var faq models.FAQ
	if err := s.repo.DB(ctx).First(&faq, "id = ?", id).Error; err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "FAQ with id %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup faq")
	}
	return &faq, nil
}

func apply(faq *models.FAQ, req FAQRequest) {
	faq.Question = strings.TrimSpace(req.Question)
	faq.Answer = strings.TrimSpace(req.Answer)
	faq.Category = nil
	if req.Category != nil {
		if category := strings.TrimSpace(*req.Category); category != "" {
			faq.Category = &category
		}
	}
	faq.Position = req.Position
	if req.Status != nil {
		faq.Status = *req.Status
	}
}

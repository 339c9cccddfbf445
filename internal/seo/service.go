package seo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Emman-24/backendFlorist/pkg/db"
	"github.com/Emman-24/backendFlorist/pkg/logger"
	"github.com/Emman-24/backendFlorist/pkg/metrics"
	"gorm.io/gorm"
)

const (
	resolveCacheScope = "seo_resolve"
	resolveCacheTTL   = 10 * time.Minute
	regenerateLimit   = 4
)

// cache is the subset of the redis client used to memoize path resolution.
type cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(scope string, parts ...string) string
}

// ServiceParams bundles the dependencies for the SEO service.
type ServiceParams struct {
	DB         *db.Client
	BaseURL    string
	BackendURL string
	Cache      cache
	Metrics    *metrics.JobMetrics
	Logger     *logger.Logger
}

// Service owns canonical URLs and search metadata. Methods run against the
// root connection unless the service was derived with Tx.
type Service struct {
	db         *db.Client
	repo       *Repository
	baseURL    string
	backendURL string
	cache      cache
	metrics    *metrics.JobMetrics
	logg       *logger.Logger
	tx         *gorm.DB
}

func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if strings.TrimSpace(params.BaseURL) == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if strings.TrimSpace(params.BackendURL) == "" {
		return nil, fmt.Errorf("backend url is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		db:         params.DB,
		repo:       NewRepository(params.DB.DB()),
		baseURL:    strings.TrimRight(params.BaseURL, "/"),
		backendURL: strings.TrimRight(params.BackendURL, "/"),
		cache:      params.Cache,
		metrics:    params.Metrics,
		logg:       logg,
	}, nil
}

// Tx returns a copy of the service whose reads and writes go through tx.
func (s *Service) Tx(tx *gorm.DB) *Service {
	clone := *s
	clone.repo = NewRepository(tx)
	clone.tx = tx
	return &clone
}

// CanonicalURL joins the public base URL with a path.
func (s *Service) CanonicalURL(path string) string {
	return s.baseURL + path
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Emman-24/backendFlorist/api/routes"
	"github.com/Emman-24/backendFlorist/internal/auth"
	"github.com/Emman-24/backendFlorist/internal/categories"
	"github.com/Emman-24/backendFlorist/internal/faqs"
	"github.com/Emman-24/backendFlorist/internal/products"
	"github.com/Emman-24/backendFlorist/internal/reviews"
	"github.com/Emman-24/backendFlorist/internal/seo"
	"github.com/Emman-24/backendFlorist/internal/subcategories"
	"github.com/Emman-24/backendFlorist/internal/tags"
	"github.com/Emman-24/backendFlorist/internal/users"
	pkgAuth "github.com/Emman-24/backendFlorist/pkg/auth"
	"github.com/Emman-24/backendFlorist/pkg/config"
	"github.com/Emman-24/backendFlorist/pkg/db"
	"github.com/Emman-24/backendFlorist/pkg/logger"
	"github.com/Emman-24/backendFlorist/pkg/metrics"
	"github.com/Emman-24/backendFlorist/pkg/migrate"
	"github.com/Emman-24/backendFlorist/pkg/redis"
	"github.com/Emman-24/backendFlorist/pkg/security"
	"github.com/Emman-24/backendFlorist/pkg/storage"
	"github.com/Emman-24/backendFlorist/pkg/storage/gcs"
	"github.com/Emman-24/backendFlorist/pkg/storage/local"
)

const (
	serviceName     = "florist-api"
	shutdownTimeout = 15 * time.Second
)

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	deps := routes.Dependencies{
		Config: cfg,
		Logger: logg,
		DB:     dbClient,
		Users:  users.NewRepository(dbClient.DB()),
	}

	seoParams := seo.ServiceParams{
		DB:         dbClient,
		BaseURL:    cfg.SEO.BaseURL,
		BackendURL: cfg.SEO.BackendURL,
		Logger:     logg,
	}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		deps.Redis = redisClient
		deps.RateLimiter = redisClient
		seoParams.Cache = redisClient
	} else {
		logg.Warn(ctx, "redis not configured; auth rate limiting and path cache disabled")
	}

	if cfg.FeatureFlags.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		deps.Metrics = metrics.NewHTTPMetrics(reg)
		deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		seoParams.Metrics = metrics.NewJobMetrics(reg)
	}

	store, imagesDir, err := newStorage(ctx, cfg, logg)
	if err != nil {
		return err
	}
	deps.Storage = store
	deps.ImagesDir = imagesDir

	tokens, err := pkgAuth.NewTokenService(cfg.JWT)
	if err != nil {
		return err
	}
	deps.Tokens = tokens

	seoService, err := seo.NewService(seoParams)
	if err != nil {
		return err
	}
	deps.SEO = seoService

	if deps.Auth, err = auth.NewService(auth.ServiceParams{
		DB:     dbClient,
		Tokens: tokens,
		Hasher: security.NewPasswordHasher(cfg.Password),
		Logger: logg,
	}); err != nil {
		return err
	}
	if deps.Categories, err = categories.NewService(dbClient, seoService); err != nil {
		return err
	}
	if deps.SubCategories, err = subcategories.NewService(dbClient, seoService); err != nil {
		return err
	}
	if deps.Products, err = products.NewService(products.ServiceParams{
		DB:             dbClient,
		SEO:            seoService,
		Storage:        store,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes(),
		Logger:         logg,
	}); err != nil {
		return err
	}
	if deps.Tags, err = tags.NewService(dbClient); err != nil {
		return err
	}
	if deps.FAQs, err = faqs.NewService(dbClient); err != nil {
		return err
	}
	if deps.Reviews, err = reviews.NewService(dbClient); err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Driver,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// newStorage picks the image storage driver. The images directory is only
// returned for the local driver, which the API serves itself.
func newStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Provider, string, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Driver)) {
	case config.StorageDriverGCS:
		client, err := gcs.NewClient(ctx, cfg.Storage, cfg.GCP, logg)
		if err != nil {
			return nil, "", err
		}
		return client, "", nil
	default:
		store, err := local.New(cfg.Storage.LocalPath, cfg.SEO.BackendURL, logg)
		if err != nil {
			return nil, "", err
		}
		return store, store.Root(), nil
	}
}

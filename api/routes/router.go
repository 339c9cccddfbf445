package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Emman-24/backendFlorist/api/controllers"
	"github.com/Emman-24/backendFlorist/api/middleware"
	"github.com/Emman-24/backendFlorist/internal/auth"
	"github.com/Emman-24/backendFlorist/internal/categories"
	"github.com/Emman-24/backendFlorist/internal/faqs"
	"github.com/Emman-24/backendFlorist/internal/products"
	"github.com/Emman-24/backendFlorist/internal/reviews"
	"github.com/Emman-24/backendFlorist/internal/subcategories"
	"github.com/Emman-24/backendFlorist/internal/tags"
	"github.com/Emman-24/backendFlorist/pkg/config"
	"github.com/Emman-24/backendFlorist/pkg/db"
	"github.com/Emman-24/backendFlorist/pkg/logger"
	"github.com/Emman-24/backendFlorist/pkg/metrics"
	"github.com/Emman-24/backendFlorist/pkg/storage"
	"github.com/Emman-24/backendFlorist/pkg/storage/local"
)

// Dependencies is everything the router wires into handlers. Optional
// collaborators (RateLimiter, Redis, Metrics, MetricsHandler, ImagesDir) may be
// left zero to disable the matching feature.
type Dependencies struct {
	Config *config.Config
	Logger *logger.Logger

	DB          db.Pinger
	Redis       db.Pinger
	RateLimiter middleware.RateLimitStore
	Storage     storage.Provider

	Tokens middleware.TokenVerifier
	Users  middleware.UserLoader

	Auth          auth.Service
	Categories    categories.Service
	SubCategories subcategories.Service
	Products      products.Service
	Tags          tags.Service
	FAQs          faqs.Service
	Reviews       reviews.Service
	SEO           controllers.SEOService

	Metrics        *metrics.HTTPMetrics
	MetricsHandler http.Handler
	ImagesDir      string
}

var staffRoles = []string{"ADMIN", "MANAGER"}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Authenticate(deps.Tokens, deps.Users, logg),
	)

	staff := middleware.RequireAnyRole(logg, staffRoles...)
	maxUpload := cfg.Storage.MaxUploadBytes()

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, readinessChecks(deps)...))
	})
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
	if deps.ImagesDir != "" {
		prefix := "/" + local.PublicPrefix + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(deps.ImagesDir))))
	}

	r.Get("/api/health", controllers.APIHealth())

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(middleware.LoginRateLimitPolicy(cfg.AuthRateLimit), deps.RateLimiter, logg)).
			Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(middleware.RegisterRateLimitPolicy(cfg.AuthRateLimit), deps.RateLimiter, logg)).
			Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", controllers.CategoryList(deps.Categories, logg))
		r.Get("/route/{route}", controllers.CategoryGetByRoute(deps.Categories, logg))
		r.Get("/{id}", controllers.CategoryGet(deps.Categories, logg))
		r.Get("/{id}/stats", controllers.CategoryStats(deps.Categories, logg))
	})

	r.Route("/api/subcategories", func(r chi.Router) {
		r.Get("/", controllers.SubCategoryList(deps.SubCategories, logg))
		r.Get("/route/{route}", controllers.SubCategoryGetByRoute(deps.SubCategories, logg))
		r.Get("/category/{categoryId}", controllers.SubCategoryListByCategory(deps.SubCategories, logg))
		r.Get("/{id}", controllers.SubCategoryGet(deps.SubCategories, logg))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.Products, logg))
		r.Get("/slug/{slug}", controllers.ProductGetBySlug(deps.Products, logg))
		r.Get("/{id}", controllers.ProductGet(deps.Products, logg))
		r.Get("/{id}/seo", controllers.ProductGetSEO(deps.Products, logg))
		r.Get("/{id}/reviews", controllers.ProductReviews(deps.Reviews, logg))
		r.Post("/{id}/reviews", controllers.ProductCreateReview(deps.Reviews, logg))

		r.Group(func(r chi.Router) {
			r.Use(staff)
			r.Post("/", controllers.ProductCreate(deps.Products, logg))
			r.Put("/{id}", controllers.ProductUpdate(deps.Products, logg))
			r.Delete("/{id}", controllers.ProductDelete(deps.Products, logg))
			r.Patch("/{id}/status", controllers.ProductToggleStatus(deps.Products, logg))
			r.Put("/{id}/seo", controllers.ProductUpdateSEO(deps.Products, logg))

			r.Put("/{id}/tags", controllers.ProductReplaceTags(deps.Products, logg))
			r.Delete("/{id}/tags", controllers.ProductRemoveTags(deps.Products, logg))

			r.Post("/{id}/images", controllers.ProductUploadImage(deps.Products, maxUpload, logg))
			r.Delete("/{id}/images/{imageId}", controllers.ProductDeleteImage(deps.Products, logg))

			r.Post("/{id}/descriptions", controllers.ProductAddDescription(deps.Products, logg))
			r.Put("/{id}/descriptions/order", controllers.ProductReorderDescriptions(deps.Products, logg))
			r.Put("/{id}/descriptions/{descriptionId}", controllers.ProductUpdateDescription(deps.Products, logg))
			r.Delete("/{id}/descriptions/{descriptionId}", controllers.ProductDeleteDescription(deps.Products, logg))

			r.Post("/{id}/variants", controllers.ProductAddVariant(deps.Products, logg))
			r.Put("/{id}/variants/{variantId}", controllers.ProductUpdateVariant(deps.Products, logg))
			r.Delete("/{id}/variants/{variantId}", controllers.ProductDeleteVariant(deps.Products, logg))
		})
	})

	r.Route("/api/tags", func(r chi.Router) {
		r.Get("/", controllers.TagList(deps.Tags, logg))
		r.Get("/route/{route}", controllers.TagGetByRoute(deps.Tags, logg))
	})

	r.Route("/api/faqs", func(r chi.Router) {
		r.Get("/", controllers.FAQListPublic(deps.FAQs, logg))
		r.Post("/{id}/views", controllers.FAQView(deps.FAQs, logg))
		r.Post("/{id}/helpful", controllers.FAQHelpful(deps.FAQs, logg))
	})

	r.Route("/api/seo", func(r chi.Router) {
		r.Get("/resolve", controllers.SEOResolve(deps.SEO, logg))
		r.Get("/metadata/{entityType}/{entityId}", controllers.SEOMetadata(deps.SEO, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(staff)

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CategoryCreate(deps.Categories, logg))
			r.Put("/order", controllers.CategoryReorder(deps.Categories, logg))
			r.Put("/{id}", controllers.CategoryUpdate(deps.Categories, logg))
			r.Delete("/{id}", controllers.CategoryDelete(deps.Categories, logg))
			r.Patch("/{id}/status", controllers.CategoryToggleStatus(deps.Categories, logg))
		})

		r.Route("/subcategories", func(r chi.Router) {
			r.Post("/", controllers.SubCategoryCreate(deps.SubCategories, logg))
			r.Put("/{id}", controllers.SubCategoryUpdate(deps.SubCategories, logg))
			r.Delete("/{id}", controllers.SubCategoryDelete(deps.SubCategories, logg))
			r.Patch("/{id}/status", controllers.SubCategoryToggleStatus(deps.SubCategories, logg))
		})

		r.Route("/tags", func(r chi.Router) {
			r.Post("/", controllers.TagCreate(deps.Tags, logg))
			r.Put("/{id}", controllers.TagUpdate(deps.Tags, logg))
			r.Delete("/{id}", controllers.TagDelete(deps.Tags, logg))
		})

		r.Route("/faqs", func(r chi.Router) {
			r.Get("/", controllers.FAQListAdmin(deps.FAQs, logg))
			r.Post("/", controllers.FAQCreate(deps.FAQs, logg))
			r.Put("/{id}", controllers.FAQUpdate(deps.FAQs, logg))
			r.Delete("/{id}", controllers.FAQDelete(deps.FAQs, logg))
			r.Patch("/{id}/status", controllers.FAQToggleStatus(deps.FAQs, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.ReviewListAdmin(deps.Reviews, logg))
			r.Patch("/{id}/status", controllers.ReviewUpdateStatus(deps.Reviews, logg))
			r.Delete("/{id}", controllers.ReviewDelete(deps.Reviews, logg))
		})

		r.Route("/seo", func(r chi.Router) {
			r.Post("/urls/{entityType}/regenerate", controllers.SEORegenerateURLs(deps.SEO, logg))
			r.Post("/metadata/products/regenerate", controllers.SEORegenerateProductMetadata(deps.SEO, logg))
		})
	})

	return r
}

func readinessChecks(deps Dependencies) []controllers.ReadinessCheck {
	var checks []controllers.ReadinessCheck
	if deps.DB != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "db", Ping: deps.DB.Ping})
	}
	if deps.Redis != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "redis", Ping: deps.Redis.Ping})
	}
	if deps.Storage != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "storage", Ping: deps.Storage.Ping})
	}
	return checks
}

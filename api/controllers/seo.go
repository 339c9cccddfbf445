package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Emman-24/backendFlorist/api/responses"
	"github.com/Emman-24/backendFlorist/api/validators"
	"github.com/Emman-24/backendFlorist/internal/products"
	"github.com/Emman-24/backendFlorist/internal/seo"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	"github.com/Emman-24/backendFlorist/pkg/enums"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/logger"
)

// SEOService is the part of the SEO service exposed over HTTP.
type SEOService interface {
	Resolve(ctx context.Context, fullPath string) (seo.Resolution, bool, error)
	GetOrGenerate(ctx context.Context, entityType enums.SEOEntityType, entityID int64, lookup seo.ProductLookup) (*models.SEOMetadata, error)
	RegenerateAll(ctx context.Context, rawType string) (seo.RegenerateResult, error)
	RegenerateAllProductMetadata(ctx context.Context) (seo.RegenerateResult, error)
}

// SEOResolve maps a storefront path back to the entity that owns it.
func SEOResolve(svc SEOService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "seo")
			return
		}
		path := normalizeResolvePath(r.URL.Query().Get("path"))
		if path == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "path is required").
				WithDetails(map[string]string{"path": "is required"})
			responses.WriteError(w, r, logg, err)
			return
		}

		res, found, err := svc.Resolve(r.Context(), path)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		if !found {
			responses.WriteError(w, r, logg, pkgerrors.Newf(pkgerrors.CodeNotFound, "No entity found for path %s", path))
			return
		}
		responses.WriteSuccess(w, res)
	}
}

func normalizeResolvePath(raw string) string {
	path := strings.TrimSpace(raw)
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return strings.ToLower(path)
}

// SEOMetadata returns stored metadata for any entity type, generating product
// metadata on first access.
func SEOMetadata(svc SEOService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "seo")
			return
		}
		rawType := chi.URLParam(r, "entityType")
		entityType, err := enums.ParseSEOEntityType(rawType)
		if err != nil {
			verr := pkgerrors.Newf(pkgerrors.CodeValidation, "unsupported entity type %q", rawType).
				WithDetails(map[string]string{"entityType": "must be category, subcategory or product"})
			responses.WriteError(w, r, logg, verr)
			return
		}
		id, err := validators.PathID(r, "entityId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		row, err := svc.GetOrGenerate(r.Context(), entityType, id, nil)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		if row == nil {
			responses.WriteError(w, r, logg, pkgerrors.Newf(pkgerrors.CodeNotFound, "SEO metadata for %s %d not found", entityType, id))
			return
		}
		responses.WriteSuccess(w, seo.MetadataFromModel(row))
	}
}

func SEORegenerateURLs(svc SEOService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "seo")
			return
		}
		result, err := svc.RegenerateAll(r.Context(), chi.URLParam(r, "entityType"))
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "SEO URLs regenerated")
	}
}

func SEORegenerateProductMetadata(svc SEOService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "seo")
			return
		}
		result, err := svc.RegenerateAllProductMetadata(r.Context())
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "Product SEO metadata regenerated")
	}
}

func ProductGetSEO(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.GetSEO(r.Context(), id)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ProductUpdateSEO(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		var body seo.CustomMetadata
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.UpdateSEO(r.Context(), id, body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "SEO metadata updated successfully")
	}
}

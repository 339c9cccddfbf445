package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Emman-24/backendFlorist/api/responses"
	"github.com/Emman-24/backendFlorist/api/validators"
	"github.com/Emman-24/backendFlorist/internal/products"
	"github.com/Emman-24/backendFlorist/pkg/logger"
)

// ProductList serves the public catalog listing with its optional filters.
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}

		filter, err := productFilter(r)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		params, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		page, err := svc.List(r.Context(), filter, params)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func productFilter(r *http.Request) (products.Filter, error) {
	var (
		filter products.Filter
		err    error
	)
	if filter.CategoryID, err = validators.ParseQueryID(r, "categoryId"); err != nil {
		return filter, err
	}
	if filter.SubCategoryID, err = validators.ParseQueryID(r, "subcategoryId"); err != nil {
		return filter, err
	}
	if filter.Featured, err = validators.ParseQueryBool(r, "featured"); err != nil {
		return filter, err
	}
	if filter.Seasonal, err = validators.ParseQueryBool(r, "seasonal"); err != nil {
		return filter, err
	}
	return filter, nil
}

func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
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
		result, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ProductGetBySlug(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		result, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		var body products.ProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, result, "Product created successfully")
	}
}

func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
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
		var body products.ProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "Product updated successfully")
	}
}

func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
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
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, nil, "Product deleted successfully")
	}
}

func ProductToggleStatus(svc products.Service, logg *logger.Logger) http.HandlerFunc {
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
		result, err := svc.ToggleStatus(r.Context(), id)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "Product status updated")
	}
}

// ProductReplaceTags swaps the whole tag set of a product.
func ProductReplaceTags(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return productTags(svc, logg, false)
}

// ProductRemoveTags detaches only the listed tags.
func ProductRemoveTags(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return productTags(svc, logg, true)
}

func productTags(svc products.Service, logg *logger.Logger, remove bool) http.HandlerFunc {
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
		var body products.TagsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		var result []products.TagRef
		if remove {
			result, err = svc.RemoveTags(r.Context(), id, body.TagIDs)
		} else {
			result, err = svc.ReplaceTags(r.Context(), id, body.TagIDs)
		}
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "Product tags updated")
	}
}

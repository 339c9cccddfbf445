package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Emman-24/backendFlorist/api/responses"
	"github.com/Emman-24/backendFlorist/api/validators"
	"github.com/Emman-24/backendFlorist/internal/categories"
	"github.com/Emman-24/backendFlorist/pkg/logger"
)

// CategoryList returns every category, or only active ones with ?active=true.
func CategoryList(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "category")
			return
		}
		active, err := validators.ParseQueryBool(r, "active")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.List(r.Context(), active != nil && *active)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func CategoryGet(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "category")
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

func CategoryGetByRoute(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "category")
			return
		}
		result, err := svc.GetByRoute(r.Context(), chi.URLParam(r, "route"))
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func CategoryStats(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "category")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.Stats(r.Context(), id)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func CategoryCreate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "category")
			return
		}
		var body categories.CategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, result, "Category created successfully")
	}
}

func CategoryUpdate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "category")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		var body categories.CategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "Category updated successfully")
	}
}

func CategoryDelete(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "category")
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
		responses.WriteMessage(w, http.StatusOK, nil, "Category deleted successfully")
	}
}

func CategoryToggleStatus(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "category")
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
		responses.WriteMessage(w, http.StatusOK, result, "Category status updated")
	}
}

func CategoryReorder(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "category")
			return
		}
		var body categories.ReorderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		if err := svc.Reorder(r.Context(), body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, nil, "Categories reordered successfully")
	}
}

package controllers

import (
	"net/http"

	"github.com/Emman-24/backendFlorist/api/responses"
	"github.com/Emman-24/backendFlorist/api/validators"
	"github.com/Emman-24/backendFlorist/internal/reviews"
	"github.com/Emman-24/backendFlorist/pkg/logger"
)

// ProductReviews lists the approved reviews of a product with its rating summary.
func ProductReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "review")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.ListApproved(r.Context(), id)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ProductCreateReview(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "review")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		var body reviews.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.Create(r.Context(), id, body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, result, "Review submitted for moderation")
	}
}

func ReviewListAdmin(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "review")
			return
		}
		params, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		page, err := svc.ListByStatus(r.Context(), r.URL.Query().Get("status"), params)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func ReviewUpdateStatus(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "review")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		var body reviews.StatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.UpdateStatus(r.Context(), id, body.Status)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "Review status updated")
	}
}

func ReviewDelete(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "review")
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
		responses.WriteMessage(w, http.StatusOK, nil, "Review deleted successfully")
	}
}

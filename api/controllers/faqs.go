package controllers

import (
	"net/http"
	"strings"

	"github.com/Emman-24/backendFlorist/api/responses"
	"github.com/Emman-24/backendFlorist/api/validators"
	"github.com/Emman-24/backendFlorist/internal/faqs"
	"github.com/Emman-24/backendFlorist/pkg/logger"
)

// FAQListPublic lists active FAQs, optionally narrowed by ?category= and ?search=.
func FAQListPublic(svc faqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "faq")
			return
		}
		q := r.URL.Query()
		result, err := svc.ListPublic(r.Context(), strings.TrimSpace(q.Get("category")), strings.TrimSpace(q.Get("search")))
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func FAQListAdmin(svc faqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "faq")
			return
		}
		status, err := validators.ParseQueryBool(r, "status")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		q := r.URL.Query()
		result, err := svc.ListAdmin(r.Context(), faqs.Filter{
			Search:   strings.TrimSpace(q.Get("search")),
			Category: strings.TrimSpace(q.Get("category")),
			Status:   status,
		})
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func FAQCreate(svc faqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "faq")
			return
		}
		var body faqs.FAQRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, result, "FAQ created successfully")
	}
}

func FAQUpdate(svc faqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "faq")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		var body faqs.FAQRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "FAQ updated successfully")
	}
}

func FAQDelete(svc faqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "faq")
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
		responses.WriteMessage(w, http.StatusOK, nil, "FAQ deleted successfully")
	}
}

func FAQToggleStatus(svc faqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "faq")
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
		responses.WriteMessage(w, http.StatusOK, result, "FAQ status updated")
	}
}

func FAQView(svc faqs.Service, logg *logger.Logger) http.HandlerFunc {
	return faqCounter(svc, logg, false)
}

func FAQHelpful(svc faqs.Service, logg *logger.Logger) http.HandlerFunc {
	return faqCounter(svc, logg, true)
}

func faqCounter(svc faqs.Service, logg *logger.Logger, helpful bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "faq")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		if helpful {
			err = svc.IncrementHelpful(r.Context(), id)
		} else {
			err = svc.IncrementViews(r.Context(), id)
		}
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, nil, "FAQ updated")
	}
}

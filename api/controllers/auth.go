package controllers

import (
	"net/http"

	"github.com/Emman-24/backendFlorist/api/responses"
	"github.com/Emman-24/backendFlorist/api/validators"
	"github.com/Emman-24/backendFlorist/internal/auth"
	"github.com/Emman-24/backendFlorist/pkg/logger"
)

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "auth")
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		responses.WriteMessage(w, http.StatusOK, result, "Login successful")
	}
}

func AuthRegister(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "auth")
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		result, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		responses.WriteMessage(w, http.StatusCreated, result, "User registered successfully")
	}
}

func AuthRefresh(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "auth")
			return
		}

		var body auth.RefreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		result, err := svc.Refresh(r.Context(), body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		responses.WriteMessage(w, http.StatusOK, result, "Token refreshed successfully")
	}
}

package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Emman-24/backendFlorist/api/responses"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/logger"
)

const readinessTimeout = 3 * time.Second

// ReadinessCheck is a named dependency probed by the readiness endpoint.
type ReadinessCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

func HealthLive(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Florist-Env", env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every check and answers 503 when any of them fails.
func HealthReady(env string, logg *logger.Logger, checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Florist-Env", env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var failed []string
		for _, check := range checks {
			if check.Ping == nil {
				continue
			}
			if err := check.Ping(ctx); err != nil {
				failed = append(failed, check.Name)
				if logg != nil {
					logCtx := logg.WithField(r.Context(), "dependency", check.Name)
					logg.Error(logCtx, "health.ready.failed", err)
				}
			}
		}
		if len(failed) > 0 {
			responses.WriteError(w, r, nil, pkgerrors.Newf(pkgerrors.CodeDependency, "not ready: %s", strings.Join(failed, ",")))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

// APIHealth is the unauthenticated health check under the API prefix.
func APIHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "UP"})
	}
}

package controllers

import (
	"net/http"

	"github.com/Emman-24/backendFlorist/api/responses"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/logger"
)

func unavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger, name string) {
	err := pkgerrors.Newf(pkgerrors.CodeInternal, "%s service unavailable", name)
	responses.WriteError(w, r, logg, err)
}

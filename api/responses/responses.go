package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/logger"
	"github.com/Emman-24/backendFlorist/pkg/types"
)

var now = time.Now

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data, "")
}

// WriteMessage writes a success envelope carrying a human readable message.
func WriteMessage(w http.ResponseWriter, status int, data any, message string) {
	WriteSuccessStatus(w, status, data, message)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, types.SuccessEnvelope{Data: data, Message: message})
}

// WriteError maps err onto the error taxonomy and writes the matching envelope.
func WriteError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())
	msg := meta.PublicMessage
	if typed.Code().ClientSafe() && typed.Message() != "" {
		msg = typed.Message()
	}

	var ctx context.Context = context.Background()
	path := ""
	if r != nil {
		ctx = r.Context()
		path = r.URL.Path
	}

	if logg != nil && meta.HTTPStatus >= http.StatusInternalServerError {
		ctx = logg.WithFields(ctx, pkgerrors.Dump(err).Fields())
		logg.Error(ctx, "request.error", err)
	} else if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code": typed.Code(),
			"status":     meta.HTTPStatus,
		})
		logg.Info(ctx, "request.rejected")
	}

	switch meta.HTTPStatus {
	case http.StatusUnauthorized, http.StatusForbidden:
		writeJSON(w, meta.HTTPStatus, types.AuthErrorEnvelope{
			Error:     meta.Title,
			Message:   msg,
			Timestamp: now().UTC(),
			Path:      path,
		})
		return
	}

	payload := types.ErrorEnvelope{
		Timestamp: now().UTC(),
		Status:    meta.HTTPStatus,
		Error:     meta.Title,
		Message:   msg,
	}
	if meta.DetailsAllowed {
		switch details := typed.Details().(type) {
		case nil:
		case map[string]string:
			payload.FieldErrors = details
		default:
			payload.Details = details
		}
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}

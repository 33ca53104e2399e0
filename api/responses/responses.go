// Package responses centralizes JSON serialization of handler results.
// Error bodies use the flat {"error": "..."} shape the storefront client
// expects.
package responses

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
	"github.com/tienditamejorada/tiendita-backend/pkg/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON serializes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to its HTTP status and public message, logging the
// underlying cause server-side. Internal details never reach the client.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := apperrors.As(err)
	if typed == nil {
		typed = apperrors.Wrap(apperrors.CodeInternal, err, "unhandled error")
	}

	meta := apperrors.MetadataFor(typed.Code())

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code":  string(typed.Code()),
			"http_status": meta.HTTPStatus,
		})
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, typed.Message(), err)
		} else {
			logg.Warn(ctx, typed.Message())
		}
	}

	message := meta.PublicMessage
	if meta.MessageAllowed && typed.Message() != "" {
		message = typed.Message()
	}

	WriteJSON(w, meta.HTTPStatus, errorBody{Error: message})
}

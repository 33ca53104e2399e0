package controllers

import (
	"net/http"

	"github.com/tienditamejorada/tiendita-backend/api/responses"
	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
	"github.com/tienditamejorada/tiendita-backend/pkg/logger"
)

// Health reports liveness and database reachability.
func Health(client *db.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := client.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w,
				apperrors.Wrap(apperrors.CodeDependency, err, "base de datos no disponible"))
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"db":     "ok",
		})
	}
}

package controllers

import (
	"net/http"

	"github.com/tienditamejorada/tiendita-backend/api/middleware"
	"github.com/tienditamejorada/tiendita-backend/api/responses"
	"github.com/tienditamejorada/tiendita-backend/internal/dashboard"
	"github.com/tienditamejorada/tiendita-backend/pkg/logger"
)

func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stats, err := svc.Stats(ctx, middleware.TiendaIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{"dashboard": stats})
	}
}

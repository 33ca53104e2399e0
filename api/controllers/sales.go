package controllers

import (
	"net/http"

	"github.com/tienditamejorada/tiendita-backend/api/middleware"
	"github.com/tienditamejorada/tiendita-backend/api/responses"
	"github.com/tienditamejorada/tiendita-backend/api/validators"
	"github.com/tienditamejorada/tiendita-backend/internal/sales"
	"github.com/tienditamejorada/tiendita-backend/pkg/logger"
)

func ListSales(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.List(ctx, middleware.TiendaIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{"sales": rows})
	}
}

// CreateSale registers a sale, decrementing stock line by line inside a
// single transaction.
func CreateSale(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req sales.CreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		res, err := svc.Create(ctx, middleware.TiendaIDFromContext(ctx), req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(ctx, "venta_id", res.VentaID), "sale.completed")
		}
		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"message":     "Venta registrada exitosamente",
			"venta_id":    res.VentaID,
			"total_final": res.TotalFinal,
		})
	}
}

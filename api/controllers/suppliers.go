package controllers

import (
	"net/http"

	"github.com/tienditamejorada/tiendita-backend/api/middleware"
	"github.com/tienditamejorada/tiendita-backend/api/responses"
	"github.com/tienditamejorada/tiendita-backend/api/validators"
	"github.com/tienditamejorada/tiendita-backend/internal/suppliers"
	"github.com/tienditamejorada/tiendita-backend/pkg/logger"
)

func ListSuppliers(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.List(ctx, middleware.TiendaIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{"suppliers": rows})
	}
}

func CreateSupplier(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req suppliers.CreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := svc.Create(ctx, middleware.TiendaIDFromContext(ctx), req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"message":     "Proveedor creado exitosamente",
			"supplier_id": id,
		})
	}
}

func UpdateSupplier(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req suppliers.UpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Update(ctx, middleware.TiendaIDFromContext(ctx), id, req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Proveedor actualizado exitosamente",
		})
	}
}

func DeleteSupplier(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, middleware.TiendaIDFromContext(ctx), id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Proveedor eliminado exitosamente",
		})
	}
}

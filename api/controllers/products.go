package controllers

import (
	"net/http"

	"github.com/tienditamejorada/tiendita-backend/api/middleware"
	"github.com/tienditamejorada/tiendita-backend/api/responses"
	"github.com/tienditamejorada/tiendita-backend/api/validators"
	"github.com/tienditamejorada/tiendita-backend/internal/products"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
	"github.com/tienditamejorada/tiendita-backend/pkg/logger"
)

// ListProducts returns the catalog, optionally filtered by ?search=,
// ?category= and ?stock_filter=bajo|agotado (older clients send ?stock=).
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tiendaID := middleware.TiendaIDFromContext(ctx)

		stock := validators.QueryString(r, "stock_filter")
		if stock == "" {
			stock = validators.QueryString(r, "stock")
		}
		filters := products.ListFilters{
			Search:      validators.QueryString(r, "search"),
			Category:    validators.QueryString(r, "category"),
			StockFilter: enums.StockFilter(stock),
		}
		rows, err := svc.List(ctx, tiendaID, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{"products": rows})
	}
}

func GetProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		row, err := svc.Get(ctx, middleware.TiendaIDFromContext(ctx), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{"product": row})
	}
}

func CreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req products.CreateRequest
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
			"success":    true,
			"message":    "Producto creado exitosamente",
			"product_id": id,
		})
	}
}

func UpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req products.UpdateRequest
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
			"message": "Producto actualizado exitosamente",
		})
	}
}

func DeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
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
			"message": "Producto eliminado exitosamente",
		})
	}
}

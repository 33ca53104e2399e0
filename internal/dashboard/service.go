// Package dashboard computes the store overview counters shown after login.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
)

// Stats is the aggregate block served at /dashboard.
type Stats struct {
	TotalProductos     int64           `json:"total_productos"`
	ProductosStockBajo int64           `json:"productos_stock_bajo"`
	VentasHoy          int64           `json:"ventas_hoy"`
	TotalVentasHoy     decimal.Decimal `json:"total_ventas_hoy"`
	EmpleadosActivos   int64           `json:"empleados_activos"`
}

// Service computes dashboard aggregates.
type Service interface {
	Stats(ctx context.Context, tiendaID uint) (*Stats, error)
}

type service struct {
	client *db.Client
	now    func() time.Time
}

func NewService(client *db.Client) Service {
	return &service{client: client, now: time.Now}
}

// Stats runs all five aggregates inside one transaction so the numbers
// describe a single point in time.
func (s *service) Stats(ctx context.Context, tiendaID uint) (*Stats, error) {
	// "Today" is the server-local calendar day, half-open range.
	now := s.now()
	year, month, day := now.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var stats Stats
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		err := tx.Model(&models.Producto{}).
			Where("tienda_id = ? AND estado = ?", tiendaID, enums.RecordActivo).
			Count(&stats.TotalProductos).Error
		if err != nil {
			return err
		}

		err = tx.Model(&models.Producto{}).
			Where("tienda_id = ? AND estado = ? AND stock_actual <= stock_minimo",
				tiendaID, enums.RecordActivo).
			Count(&stats.ProductosStockBajo).Error
		if err != nil {
			return err
		}

		ventasHoy := tx.Model(&models.Venta{}).
			Where("tienda_id = ? AND estado = ? AND fecha_venta >= ? AND fecha_venta < ?",
				tiendaID, enums.SaleCompletada, startOfDay, endOfDay)
		if err := ventasHoy.Count(&stats.VentasHoy).Error; err != nil {
			return err
		}

		var total struct {
			Total decimal.Decimal
		}
		err = tx.Model(&models.Venta{}).
			Select("COALESCE(SUM(total), 0) AS total").
			Where("tienda_id = ? AND estado = ? AND fecha_venta >= ? AND fecha_venta < ?",
				tiendaID, enums.SaleCompletada, startOfDay, endOfDay).
			Scan(&total).Error
		if err != nil {
			return err
		}
		stats.TotalVentasHoy = total.Total

		return tx.Model(&models.Usuario{}).
			Where("tienda_id = ? AND rol = ? AND estado = ?",
				tiendaID, enums.RoleEmpleado, enums.RecordActivo).
			Count(&stats.EmpleadosActivos).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "computing dashboard stats")
	}
	return &stats, nil
}

package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tienditamejorada/tiendita-backend/internal/employees"
	"github.com/tienditamejorada/tiendita-backend/internal/products"
	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
	"github.com/tienditamejorada/tiendita-backend/pkg/metrics"
)

// ItemRequest is one product line on an incoming ticket. When
// precio_unitario is omitted the product's current sale price applies.
type ItemRequest struct {
	ProductoID     uint             `json:"producto_id"`
	Cantidad       int              `json:"cantidad"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

// CreateRequest is the incoming sale ticket.
type CreateRequest struct {
	EmpleadoID uint             `json:"empleado_id"`
	Productos  []ItemRequest    `json:"productos"`
	Descuento  *decimal.Decimal `json:"descuento"`
	MetodoPago string           `json:"metodo_pago"`
	Notas      string           `json:"notas"`
}

// CreateResult reports the registered sale.
type CreateResult struct {
	VentaID    uint
	TotalFinal decimal.Decimal
}

// Service exposes the sale operations used by the controllers.
type Service interface {
	Create(ctx context.Context, tiendaID uint, req CreateRequest) (*CreateResult, error)
	List(ctx context.Context, tiendaID uint) ([]models.Venta, error)
}

type service struct {
	client    *db.Client
	sales     *Repository
	productos *products.Repository
	staff     *employees.Repository
	now       func() time.Time
}

// ServiceParams bundles the dependencies for the sales service.
type ServiceParams struct {
	Client    *db.Client
	Sales     *Repository
	Products  *products.Repository
	Employees *employees.Repository
}

func NewService(params ServiceParams) Service {
	return &service{
		client:    params.Client,
		sales:     params.Sales,
		productos: params.Products,
		staff:     params.Employees,
		now:       time.Now,
	}
}

// Create registers a sale atomically: every line item either decrements
// stock or the whole ticket rolls back. The conditional decrement is what
// serializes concurrent sales of the last units.
func (s *service) Create(ctx context.Context, tiendaID uint, req CreateRequest) (*CreateResult, error) {
	if req.EmpleadoID == 0 || len(req.Productos) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "Datos de venta incompletos")
	}
	for _, item := range req.Productos {
		if item.ProductoID == 0 || item.Cantidad <= 0 {
			return nil, apperrors.New(apperrors.CodeValidation, "Datos de venta incompletos")
		}
	}

	descuento := decimal.Zero
	if req.Descuento != nil {
		descuento = *req.Descuento
	}
	if descuento.IsNegative() {
		return nil, apperrors.New(apperrors.CodeValidation, "El descuento no puede ser negativo")
	}

	metodoPago, err := enums.ParseMetodoPago(req.MetodoPago)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "El campo metodo_pago tiene un valor no permitido")
	}

	if _, err := s.staff.FindActive(ctx, tiendaID, req.EmpleadoID); err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.New(apperrors.CodeValidation, "Empleado no válido para la tienda")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "validating employee")
	}

	var result CreateResult

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		salesTx := s.sales.WithTx(tx)
		productosTx := s.productos.WithTx(tx)

		total := decimal.Zero
		items := make([]models.VentaItem, 0, len(req.Productos))

		for _, line := range req.Productos {
			producto, err := productosTx.FindByID(ctx, tiendaID, line.ProductoID)
			if err != nil {
				if db.IsNotFound(err) {
					return apperrors.New(apperrors.CodeValidation,
						fmt.Sprintf("Producto %d no encontrado", line.ProductoID))
				}
				return apperrors.Wrap(apperrors.CodeInternal, err, "loading sale product")
			}

			precio := producto.PrecioVenta
			if line.PrecioUnitario != nil {
				precio = *line.PrecioUnitario
			}
			if precio.IsNegative() {
				return apperrors.New(apperrors.CodeValidation, "El precio unitario no puede ser negativo")
			}

			ok, err := productosTx.DecrementStock(ctx, tiendaID, producto.ID, line.Cantidad)
			if err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "decrementing stock")
			}
			if !ok {
				return apperrors.New(apperrors.CodeValidation,
					fmt.Sprintf("Stock insuficiente para %s", producto.Nombre))
			}

			subtotal := precio.Mul(decimal.NewFromInt(int64(line.Cantidad)))
			total = total.Add(subtotal)
			items = append(items, models.VentaItem{
				ProductoID:     producto.ID,
				Cantidad:       line.Cantidad,
				PrecioUnitario: precio,
				Subtotal:       subtotal,
			})
		}

		if descuento.GreaterThan(total) {
			return apperrors.New(apperrors.CodeValidation, "El descuento no puede exceder el subtotal")
		}
		totalFinal := total.Sub(descuento)

		venta := models.Venta{
			TiendaID:   tiendaID,
			EmpleadoID: req.EmpleadoID,
			Total:      totalFinal,
			Descuento:  descuento,
			MetodoPago: metodoPago,
			Notas:      req.Notas,
			Estado:     enums.SaleCompletada,
			FechaVenta: s.now(),
		}
		if err := salesTx.Create(ctx, &venta); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "creating sale")
		}

		for i := range items {
			items[i].VentaID = venta.ID
		}
		if err := salesTx.CreateItems(ctx, items); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "creating sale items")
		}

		result = CreateResult{VentaID: venta.ID, TotalFinal: totalFinal}
		return nil
	})
	if err != nil {
		if apperrors.As(err) != nil {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "registering sale")
	}

	metrics.SalesCompletedTotal.Inc()
	return &result, nil
}

func (s *service) List(ctx context.Context, tiendaID uint) ([]models.Venta, error) {
	rows, err := s.sales.List(ctx, tiendaID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing sales")
	}
	if rows == nil {
		rows = []models.Venta{}
	}
	return rows, nil
}

package products

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
)

// CreateRequest carries the fields accepted when registering a product.
type CreateRequest struct {
	Codigo       string           `json:"codigo" validate:"required"`
	Nombre       string           `json:"nombre" validate:"required"`
	Descripcion  string           `json:"descripcion"`
	Marca        string           `json:"marca"`
	CategoriaID  *uint            `json:"categoria_id"`
	ProveedorID  *uint            `json:"proveedor_id"`
	PrecioCompra *decimal.Decimal `json:"precio_compra" validate:"required"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta" validate:"required"`
	StockActual  *int             `json:"stock_actual" validate:"required,gte=0"`
	StockMinimo  int              `json:"stock_minimo" validate:"gte=0"`
}

// UpdateRequest carries a partial product update. Nil fields stay unchanged.
type UpdateRequest struct {
	Codigo       *string          `json:"codigo"`
	Nombre       *string          `json:"nombre"`
	Descripcion  *string          `json:"descripcion"`
	Marca        *string          `json:"marca"`
	CategoriaID  *uint            `json:"categoria_id"`
	ProveedorID  *uint            `json:"proveedor_id"`
	PrecioCompra *decimal.Decimal `json:"precio_compra"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	StockActual  *int             `json:"stock_actual" validate:"omitempty,gte=0"`
	StockMinimo  *int             `json:"stock_minimo" validate:"omitempty,gte=0"`
}

// Service exposes the catalog operations used by the controllers.
type Service interface {
	List(ctx context.Context, tiendaID uint, filters ListFilters) ([]ProductoView, error)
	Get(ctx context.Context, tiendaID, id uint) (*models.Producto, error)
	Create(ctx context.Context, tiendaID uint, req CreateRequest) (uint, error)
	Update(ctx context.Context, tiendaID, id uint, req UpdateRequest) error
	Delete(ctx context.Context, tiendaID, id uint) error
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, tiendaID uint, filters ListFilters) ([]ProductoView, error) {
	rows, err := s.repo.List(ctx, tiendaID, filters)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing products")
	}
	if rows == nil {
		rows = []ProductoView{}
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, tiendaID, id uint) (*models.Producto, error) {
	row, err := s.repo.FindByID(ctx, tiendaID, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.New(apperrors.CodeNotFound, "Producto no encontrado")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading product")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, tiendaID uint, req CreateRequest) (uint, error) {
	row := models.Producto{
		TiendaID:     tiendaID,
		CategoriaID:  req.CategoriaID,
		ProveedorID:  req.ProveedorID,
		Codigo:       req.Codigo,
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Marca:        req.Marca,
		PrecioCompra: *req.PrecioCompra,
		PrecioVenta:  *req.PrecioVenta,
		StockActual:  *req.StockActual,
		StockMinimo:  req.StockMinimo,
		Estado:       enums.RecordActivo,
	}
	if err := s.repo.Create(ctx, &row); err != nil {
		if db.IsUniqueViolation(err) {
			return 0, apperrors.New(apperrors.CodeConflict, "El código de producto ya existe")
		}
		return 0, apperrors.Wrap(apperrors.CodeInternal, err, "creating product")
	}
	return row.ID, nil
}

func (s *service) Update(ctx context.Context, tiendaID, id uint, req UpdateRequest) error {
	changes := map[string]any{}
	if req.Codigo != nil {
		changes["codigo"] = *req.Codigo
	}
	if req.Nombre != nil {
		changes["nombre"] = *req.Nombre
	}
	if req.Descripcion != nil {
		changes["descripcion"] = *req.Descripcion
	}
	if req.Marca != nil {
		changes["marca"] = *req.Marca
	}
	if req.CategoriaID != nil {
		changes["categoria_id"] = *req.CategoriaID
	}
	if req.ProveedorID != nil {
		changes["proveedor_id"] = *req.ProveedorID
	}
	if req.PrecioCompra != nil {
		changes["precio_compra"] = *req.PrecioCompra
	}
	if req.PrecioVenta != nil {
		changes["precio_venta"] = *req.PrecioVenta
	}
	if req.StockActual != nil {
		changes["stock_actual"] = *req.StockActual
	}
	if req.StockMinimo != nil {
		changes["stock_minimo"] = *req.StockMinimo
	}
	if len(changes) == 0 {
		return apperrors.New(apperrors.CodeValidation, "No hay campos para actualizar")
	}

	if err := s.repo.Update(ctx, tiendaID, id, changes); err != nil {
		if db.IsNotFound(err) {
			return apperrors.New(apperrors.CodeNotFound, "Producto no encontrado")
		}
		if db.IsUniqueViolation(err) {
			return apperrors.New(apperrors.CodeConflict, "El código de producto ya existe")
		}
		return apperrors.Wrap(apperrors.CodeInternal, err, "updating product")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, tiendaID, id uint) error {
	if err := s.repo.SoftDelete(ctx, tiendaID, id); err != nil {
		if db.IsNotFound(err) {
			return apperrors.New(apperrors.CodeNotFound, "Producto no encontrado")
		}
		return apperrors.Wrap(apperrors.CodeInternal, err, "deleting product")
	}
	return nil
}

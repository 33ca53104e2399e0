package products

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
)

// ListFilters narrows the product listing the way the storefront UI does.
type ListFilters struct {
	Search      string
	Category    string
	StockFilter enums.StockFilter
}

// ProductoView is a catalog row enriched with the joined category and
// supplier names.
type ProductoView struct {
	ID              uint               `json:"id"`
	TiendaID        uint               `json:"tienda_id"`
	CategoriaID     *uint              `json:"categoria_id"`
	ProveedorID     *uint              `json:"proveedor_id"`
	Codigo          string             `json:"codigo"`
	Nombre          string             `json:"nombre"`
	Descripcion     string             `json:"descripcion"`
	Marca           string             `json:"marca"`
	PrecioCompra    decimal.Decimal    `json:"precio_compra"`
	PrecioVenta     decimal.Decimal    `json:"precio_venta"`
	StockActual     int                `json:"stock_actual"`
	StockMinimo     int                `json:"stock_minimo"`
	Estado          enums.RecordEstado `json:"estado"`
	FechaRegistro   time.Time          `json:"fecha_registro"`
	CategoriaNombre *string            `json:"categoria_nombre"`
	ProveedorNombre *string            `json:"proveedor_nombre"`
}

// Repository wires product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns active products of the tienda, filtered and ordered by name.
func (r *Repository) List(ctx context.Context, tiendaID uint, filters ListFilters) ([]ProductoView, error) {
	q := r.db.WithContext(ctx).
		Table("productos AS p").
		Select("p.id, p.tienda_id, p.categoria_id, p.proveedor_id, p.codigo, p.nombre, p.descripcion, p.marca, p.precio_compra, p.precio_venta, p.stock_actual, p.stock_minimo, p.estado, p.fecha_registro, c.nombre AS categoria_nombre, pr.empresa AS proveedor_nombre").
		Joins("LEFT JOIN categorias c ON p.categoria_id = c.id").
		Joins("LEFT JOIN proveedores pr ON p.proveedor_id = pr.id").
		Where("p.tienda_id = ? AND p.estado = ?", tiendaID, enums.RecordActivo)

	if filters.Search != "" {
		// LOWER on both sides keeps the match case-insensitive on
		// postgres as well as sqlite.
		like := "%" + strings.ToLower(filters.Search) + "%"
		q = q.Where("LOWER(p.nombre) LIKE ? OR LOWER(p.codigo) LIKE ? OR LOWER(p.marca) LIKE ?", like, like, like)
	}
	if filters.Category != "" {
		q = q.Where("c.nombre = ?", filters.Category)
	}
	switch filters.StockFilter {
	case enums.StockBajo:
		q = q.Where("p.stock_actual <= p.stock_minimo")
	case enums.StockAgotado:
		q = q.Where("p.stock_actual = 0")
	}

	var rows []ProductoView
	if err := q.Order("p.nombre").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads an active product scoped to the tienda.
func (r *Repository) FindByID(ctx context.Context, tiendaID, id uint) (*models.Producto, error) {
	var row models.Producto
	err := r.db.WithContext(ctx).
		Where("id = ? AND tienda_id = ? AND estado = ?", id, tiendaID, enums.RecordActivo).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a product row.
func (r *Repository) Create(ctx context.Context, producto *models.Producto) error {
	return r.db.WithContext(ctx).Create(producto).Error
}

// Update applies the given column changes to an active tienda-scoped product.
// Returns gorm.ErrRecordNotFound when no row matched.
func (r *Repository) Update(ctx context.Context, tiendaID, id uint, changes map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Producto{}).
		Where("id = ? AND tienda_id = ? AND estado = ?", id, tiendaID, enums.RecordActivo).
		Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete marks the product inactive. Returns gorm.ErrRecordNotFound when
// no active row matched.
func (r *Repository) SoftDelete(ctx context.Context, tiendaID, id uint) error {
	return r.Update(ctx, tiendaID, id, map[string]any{"estado": enums.RecordInactivo})
}

// DecrementStock atomically subtracts qty when enough stock remains. It
// reports false without touching the row otherwise, which is what keeps
// concurrent sales from driving stock negative.
func (r *Repository) DecrementStock(ctx context.Context, tiendaID, id uint, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Producto{}).
		Where("id = ? AND tienda_id = ? AND estado = ? AND stock_actual >= ?",
			id, tiendaID, enums.RecordActivo, qty).
		Update("stock_actual", gorm.Expr("stock_actual - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

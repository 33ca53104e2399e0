package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
)

// Venta is a completed sale header.
type Venta struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	TiendaID   uint             `gorm:"index;not null" json:"tienda_id"`
	EmpleadoID uint             `gorm:"index;not null" json:"empleado_id"`
	Total      decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0" json:"total"`
	Descuento  decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0" json:"descuento"`
	MetodoPago enums.MetodoPago `gorm:"size:20;not null;default:efectivo" json:"metodo_pago"`
	Notas      string           `gorm:"size:500" json:"notas"`
	Estado     enums.SaleEstado `gorm:"size:20;not null;default:completada" json:"estado"`
	FechaVenta time.Time        `gorm:"index;not null" json:"fecha_venta"`
	CreatedAt  time.Time        `json:"-"`
	UpdatedAt  time.Time        `json:"-"`

	Items    []VentaItem `gorm:"foreignKey:VentaID" json:"items,omitempty"`
	Empleado *Usuario    `gorm:"foreignKey:EmpleadoID" json:"-"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is a single product line within a sale.
type VentaItem struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	VentaID        uint            `gorm:"index;not null" json:"venta_id"`
	ProductoID     uint            `gorm:"index;not null" json:"producto_id"`
	Cantidad       int             `gorm:"not null" json:"cantidad"`
	PrecioUnitario decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"precio_unitario"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	CreatedAt      time.Time       `json:"-"`

	Producto *Producto `gorm:"foreignKey:ProductoID" json:"-"`
}

func (VentaItem) TableName() string { return "venta_items" }

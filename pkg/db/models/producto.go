package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
)

// Producto is a catalog item with its current stock level.
type Producto struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	TiendaID      uint               `gorm:"index;not null" json:"tienda_id"`
	CategoriaID   *uint              `gorm:"index" json:"categoria_id"`
	ProveedorID   *uint              `gorm:"index" json:"proveedor_id"`
	Codigo        string             `gorm:"size:64;index;not null" json:"codigo"`
	Nombre        string             `gorm:"size:150;not null" json:"nombre"`
	Descripcion   string             `gorm:"size:500" json:"descripcion"`
	Marca         string             `gorm:"size:100" json:"marca"`
	PrecioCompra  decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"precio_compra"`
	PrecioVenta   decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"precio_venta"`
	StockActual   int                `gorm:"not null;default:0" json:"stock_actual"`
	StockMinimo   int                `gorm:"not null;default:0" json:"stock_minimo"`
	Estado        enums.RecordEstado `gorm:"size:20;not null;default:activo" json:"estado"`
	FechaRegistro time.Time          `gorm:"column:fecha_registro;autoCreateTime" json:"fecha_registro"`
	UpdatedAt     time.Time          `json:"-"`

	Categoria *Categoria `gorm:"foreignKey:CategoriaID" json:"-"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID" json:"-"`
}

func (Producto) TableName() string { return "productos" }

package models

import (
	"time"

	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
)

// Proveedor is a supplier registered by a tienda.
type Proveedor struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	TiendaID      uint               `gorm:"index;not null" json:"tienda_id"`
	Empresa       string             `gorm:"size:150;not null" json:"empresa"`
	Contacto      string             `gorm:"size:150" json:"contacto"`
	Telefono      string             `gorm:"size:30" json:"telefono"`
	Email         string             `gorm:"size:150" json:"email"`
	Estado        enums.RecordEstado `gorm:"size:20;not null;default:activo" json:"estado"`
	FechaRegistro time.Time          `gorm:"column:fecha_registro;autoCreateTime" json:"fecha_registro"`
	UpdatedAt     time.Time          `json:"-"`
}

func (Proveedor) TableName() string { return "proveedores" }

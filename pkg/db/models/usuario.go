package models

import (
	"time"

	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
)

// Usuario is a login account scoped to a tienda.
type Usuario struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	TiendaID       uint               `gorm:"index;not null" json:"tienda_id"`
	Username       string             `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash   string             `gorm:"size:255;not null" json:"-"`
	NombreCompleto string             `gorm:"size:150;not null" json:"nombre_completo"`
	Email          string             `gorm:"size:150" json:"email"`
	Telefono       string             `gorm:"size:30" json:"telefono"`
	Rol            enums.UserRole     `gorm:"size:20;not null" json:"rol"`
	Estado         enums.RecordEstado `gorm:"size:20;not null;default:activo" json:"estado"`
	FechaRegistro  time.Time          `gorm:"column:fecha_registro;autoCreateTime" json:"fecha_registro"`
	UpdatedAt      time.Time          `json:"-"`

	Tienda *Tienda `gorm:"foreignKey:TiendaID" json:"-"`
}

func (Usuario) TableName() string { return "usuarios" }

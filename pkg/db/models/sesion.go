package models

import (
	"time"

	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
)

// SesionUsuario is a server-side login session keyed by an opaque token.
type SesionUsuario struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	UsuarioID     uint                `gorm:"index;not null" json:"usuario_id"`
	Token         string              `gorm:"column:token_sesion;size:64;uniqueIndex;not null" json:"-"`
	IPAddress     string              `gorm:"column:ip_address;size:64" json:"ip_address"`
	UserAgent     string              `gorm:"size:255" json:"user_agent"`
	Estado        enums.SessionEstado `gorm:"size:20;not null;default:activa" json:"estado"`
	FechaCreacion time.Time           `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID" json:"-"`
}

func (SesionUsuario) TableName() string { return "sesiones_usuario" }

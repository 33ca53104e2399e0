package models

import "time"

// Tienda is a registered store. Every other business row belongs to one.
// Tiendas are created at registration and never deleted.
type Tienda struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Nombre        string    `gorm:"size:150;not null" json:"nombre"`
	Email         string    `gorm:"size:150" json:"email"`
	FechaRegistro time.Time `gorm:"column:fecha_registro;autoCreateTime" json:"fecha_registro"`
}

func (Tienda) TableName() string { return "tiendas" }

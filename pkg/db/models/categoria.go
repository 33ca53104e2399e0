package models

// Categoria groups productos within a tienda.
type Categoria struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TiendaID uint   `gorm:"index;not null" json:"tienda_id"`
	Nombre   string `gorm:"size:100;not null" json:"nombre"`
}

func (Categoria) TableName() string { return "categorias" }

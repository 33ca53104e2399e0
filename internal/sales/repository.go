package sales

import (
	"context"

	"gorm.io/gorm"

	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
)

// Repository wires sale persistence helpers.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the venta header. Items are inserted separately so their
// venta_id can reference the assigned header id.
func (r *Repository) Create(ctx context.Context, venta *models.Venta) error {
	return r.db.WithContext(ctx).Omit("Items").Create(venta).Error
}

// CreateItems inserts the sale's line items.
func (r *Repository) CreateItems(ctx context.Context, items []models.VentaItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// List returns the tienda's sales newest first, line items included.
func (r *Repository) List(ctx context.Context, tiendaID uint) ([]models.Venta, error) {
	var rows []models.Venta
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tienda_id = ?", tiendaID).
		Order("fecha_venta DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

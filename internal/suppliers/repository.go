package suppliers

import (
	"context"

	"gorm.io/gorm"

	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
)

// Repository wires supplier persistence helpers.
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

// List returns the tienda's active suppliers ordered by company name.
func (r *Repository) List(ctx context.Context, tiendaID uint) ([]models.Proveedor, error) {
	var rows []models.Proveedor
	err := r.db.WithContext(ctx).
		Where("tienda_id = ? AND estado = ?", tiendaID, enums.RecordActivo).
		Order("empresa").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a supplier row.
func (r *Repository) Create(ctx context.Context, proveedor *models.Proveedor) error {
	return r.db.WithContext(ctx).Create(proveedor).Error
}

// Update applies column changes to an active tienda-scoped supplier.
// Returns gorm.ErrRecordNotFound when no row matched.
func (r *Repository) Update(ctx context.Context, tiendaID, id uint, changes map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Proveedor{}).
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

// SoftDelete marks the supplier inactive.
func (r *Repository) SoftDelete(ctx context.Context, tiendaID, id uint) error {
	return r.Update(ctx, tiendaID, id, map[string]any{"estado": enums.RecordInactivo})
}

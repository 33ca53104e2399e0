package employees

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
)

// EmpleadoView is the staff listing row exposed to the client. The password
// hash never leaves the repository.
type EmpleadoView struct {
	ID             uint               `json:"id"`
	Username       string             `json:"username"`
	NombreCompleto string             `json:"nombre_completo"`
	Email          string             `json:"email"`
	Telefono       string             `json:"telefono"`
	FechaRegistro  time.Time          `json:"fecha_registro"`
	Estado         enums.RecordEstado `json:"estado"`
}

// Repository wires staff persistence helpers.
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

// List returns the tienda's staff accounts ordered by full name.
func (r *Repository) List(ctx context.Context, tiendaID uint) ([]EmpleadoView, error) {
	var rows []EmpleadoView
	err := r.db.WithContext(ctx).
		Model(&models.Usuario{}).
		Select("id, username, nombre_completo, email, telefono, fecha_registro, estado").
		Where("tienda_id = ? AND rol = ?", tiendaID, enums.RoleEmpleado).
		Order("nombre_completo").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a staff account.
func (r *Repository) Create(ctx context.Context, empleado *models.Usuario) error {
	return r.db.WithContext(ctx).Create(empleado).Error
}

// FindByID loads a staff account scoped to the tienda.
func (r *Repository) FindByID(ctx context.Context, tiendaID, id uint) (*models.Usuario, error) {
	var row models.Usuario
	err := r.db.WithContext(ctx).
		Where("id = ? AND tienda_id = ? AND rol = ?", id, tiendaID, enums.RoleEmpleado).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Update applies column changes to a tienda-scoped staff account. Returns
// gorm.ErrRecordNotFound when no row matched.
func (r *Repository) Update(ctx context.Context, tiendaID, id uint, changes map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Usuario{}).
		Where("id = ? AND tienda_id = ? AND rol = ?", id, tiendaID, enums.RoleEmpleado).
		Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindActive loads an active tienda member regardless of role. Sales use it
// to validate the empleado recorded on a ticket.
func (r *Repository) FindActive(ctx context.Context, tiendaID, id uint) (*models.Usuario, error) {
	var row models.Usuario
	err := r.db.WithContext(ctx).
		Where("id = ? AND tienda_id = ? AND estado = ?", id, tiendaID, enums.RecordActivo).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
)

// UsuarioConTienda is the login read model: the account joined with its
// store's display name.
type UsuarioConTienda struct {
	models.Usuario
	TiendaNombre string
}

// Repository wires the account lookups used during authentication.
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

// FindActiveByUsername loads an active account with its tienda name.
func (r *Repository) FindActiveByUsername(ctx context.Context, username string) (*UsuarioConTienda, error) {
	var user models.Usuario
	err := r.db.WithContext(ctx).
		Where("username = ? AND estado = ?", username, enums.RecordActivo).
		First(&user).Error
	if err != nil {
		return nil, err
	}

	var tienda models.Tienda
	if err := r.db.WithContext(ctx).First(&tienda, user.TiendaID).Error; err != nil {
		return nil, err
	}

	return &UsuarioConTienda{Usuario: user, TiendaNombre: tienda.Nombre}, nil
}

// UsernameExists reports whether any account holds the username, active
// or not. Usernames are globally unique.
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Usuario{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateTienda inserts a store row.
func (r *Repository) CreateTienda(ctx context.Context, tienda *models.Tienda) error {
	return r.db.WithContext(ctx).Create(tienda).Error
}

// CreateUsuario inserts an account row.
func (r *Repository) CreateUsuario(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

// Package suppliers manages the tienda's supplier registry. The original
// storefront shipped these endpoints as stubs; this is the filled-in CRUD.
package suppliers

import (
	"context"

	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
)

// CreateRequest carries the fields accepted when registering a supplier.
type CreateRequest struct {
	Empresa  string `json:"empresa" validate:"required"`
	Contacto string `json:"contacto"`
	Telefono string `json:"telefono"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// UpdateRequest carries a partial supplier update. Nil fields stay unchanged.
type UpdateRequest struct {
	Empresa  *string `json:"empresa"`
	Contacto *string `json:"contacto"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// Service exposes supplier operations used by the controllers.
type Service interface {
	List(ctx context.Context, tiendaID uint) ([]models.Proveedor, error)
	Create(ctx context.Context, tiendaID uint, req CreateRequest) (uint, error)
	Update(ctx context.Context, tiendaID, id uint, req UpdateRequest) error
	Delete(ctx context.Context, tiendaID, id uint) error
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, tiendaID uint) ([]models.Proveedor, error) {
	rows, err := s.repo.List(ctx, tiendaID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing suppliers")
	}
	if rows == nil {
		rows = []models.Proveedor{}
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, tiendaID uint, req CreateRequest) (uint, error) {
	row := models.Proveedor{
		TiendaID: tiendaID,
		Empresa:  req.Empresa,
		Contacto: req.Contacto,
		Telefono: req.Telefono,
		Email:    req.Email,
		Estado:   enums.RecordActivo,
	}
	if err := s.repo.Create(ctx, &row); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, err, "creating supplier")
	}
	return row.ID, nil
}

func (s *service) Update(ctx context.Context, tiendaID, id uint, req UpdateRequest) error {
	changes := map[string]any{}
	if req.Empresa != nil {
		changes["empresa"] = *req.Empresa
	}
	if req.Contacto != nil {
		changes["contacto"] = *req.Contacto
	}
	if req.Telefono != nil {
		changes["telefono"] = *req.Telefono
	}
	if req.Email != nil {
		changes["email"] = *req.Email
	}
	if len(changes) == 0 {
		return apperrors.New(apperrors.CodeValidation, "No hay campos para actualizar")
	}

	if err := s.repo.Update(ctx, tiendaID, id, changes); err != nil {
		if db.IsNotFound(err) {
			return apperrors.New(apperrors.CodeNotFound, "Proveedor no encontrado")
		}
		return apperrors.Wrap(apperrors.CodeInternal, err, "updating supplier")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, tiendaID, id uint) error {
	if err := s.repo.SoftDelete(ctx, tiendaID, id); err != nil {
		if db.IsNotFound(err) {
			return apperrors.New(apperrors.CodeNotFound, "Proveedor no encontrado")
		}
		return apperrors.Wrap(apperrors.CodeInternal, err, "deleting supplier")
	}
	return nil
}

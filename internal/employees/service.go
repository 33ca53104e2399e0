package employees

import (
	"context"

	"gorm.io/gorm"

	"github.com/tienditamejorada/tiendita-backend/pkg/config"
	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
	"github.com/tienditamejorada/tiendita-backend/pkg/security"
)

// CreateRequest carries the fields accepted when hiring staff.
type CreateRequest struct {
	Username       string `json:"username" validate:"required"`
	Password       string `json:"password" validate:"required"`
	NombreCompleto string `json:"nombre_completo" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Telefono       string `json:"telefono"`
}

// UpdateRequest carries a partial staff update. Nil fields stay unchanged.
type UpdateRequest struct {
	NombreCompleto *string `json:"nombre_completo"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Telefono       *string `json:"telefono"`
	Estado         *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	Password       *string `json:"password"`
}

// Service exposes staff management operations.
type Service interface {
	List(ctx context.Context, tiendaID uint) ([]EmpleadoView, error)
	Create(ctx context.Context, tiendaID uint, req CreateRequest) (uint, error)
	Update(ctx context.Context, tiendaID, id uint, req UpdateRequest) error
}

type sessionRevoker interface {
	RevokeAllForUser(ctx context.Context, tx *gorm.DB, usuarioID uint) error
}

type service struct {
	client      *db.Client
	repo        *Repository
	sessions    sessionRevoker
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies for the staff service.
type ServiceParams struct {
	Client         *db.Client
	Repo           *Repository
	Sessions       sessionRevoker
	PasswordConfig config.PasswordConfig
}

func NewService(params ServiceParams) Service {
	return &service{
		client:      params.Client,
		repo:        params.Repo,
		sessions:    params.Sessions,
		passwordCfg: params.PasswordConfig,
	}
}

func (s *service) List(ctx context.Context, tiendaID uint) ([]EmpleadoView, error) {
	rows, err := s.repo.List(ctx, tiendaID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing employees")
	}
	if rows == nil {
		rows = []EmpleadoView{}
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, tiendaID uint, req CreateRequest) (uint, error) {
	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, err, "hashing password")
	}

	row := models.Usuario{
		TiendaID:       tiendaID,
		Username:       req.Username,
		PasswordHash:   hash,
		NombreCompleto: req.NombreCompleto,
		Email:          req.Email,
		Telefono:       req.Telefono,
		Rol:            enums.RoleEmpleado,
		Estado:         enums.RecordActivo,
	}
	if err := s.repo.Create(ctx, &row); err != nil {
		if db.IsUniqueViolation(err) {
			return 0, apperrors.New(apperrors.CodeConflict, "El username ya existe")
		}
		return 0, apperrors.Wrap(apperrors.CodeInternal, err, "creating employee")
	}
	return row.ID, nil
}

func (s *service) Update(ctx context.Context, tiendaID, id uint, req UpdateRequest) error {
	changes := map[string]any{}
	if req.NombreCompleto != nil {
		changes["nombre_completo"] = *req.NombreCompleto
	}
	if req.Email != nil {
		changes["email"] = *req.Email
	}
	if req.Telefono != nil {
		changes["telefono"] = *req.Telefono
	}
	if req.Estado != nil {
		changes["estado"] = *req.Estado
	}
	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password, s.passwordCfg)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "hashing password")
		}
		changes["password_hash"] = hash
	}
	if len(changes) == 0 {
		return apperrors.New(apperrors.CodeValidation, "No hay campos para actualizar")
	}

	// Disabling an account also revokes its sessions, in the same
	// transaction, so a fired employee's token stops working immediately.
	var err error
	if req.Estado != nil && enums.RecordEstado(*req.Estado) == enums.RecordInactivo {
		err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
			if err := s.repo.WithTx(tx).Update(ctx, tiendaID, id, changes); err != nil {
				return err
			}
			return s.sessions.RevokeAllForUser(ctx, tx, id)
		})
	} else {
		err = s.repo.Update(ctx, tiendaID, id, changes)
	}
	if err != nil {
		if db.IsNotFound(err) {
			return apperrors.New(apperrors.CodeNotFound, "Empleado no encontrado")
		}
		if apperrors.As(err) != nil {
			return err
		}
		return apperrors.Wrap(apperrors.CodeInternal, err, "updating employee")
	}
	return nil
}

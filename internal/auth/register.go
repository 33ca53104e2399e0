package auth

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

// RegisterRequest carries the signup form: a new tienda plus its owner.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required"`
	Password       string `json:"password" validate:"required"`
	NombreCompleto string `json:"nombre_completo" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	TiendaNombre   string `json:"tienda_nombre" validate:"required"`
}

// RegisterResult reports the ids assigned during signup.
type RegisterResult struct {
	UserID   uint
	TiendaID uint
}

// RegisterService creates a tienda and its owner account atomically.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
}

type registerService struct {
	client      *db.Client
	repo        *Repository
	passwordCfg config.PasswordConfig
}

// RegisterServiceParams bundles the dependencies for signup.
type RegisterServiceParams struct {
	Client         *db.Client
	Repo           *Repository
	PasswordConfig config.PasswordConfig
}

func NewRegisterService(params RegisterServiceParams) RegisterService {
	return &registerService{
		client:      params.Client,
		repo:        params.Repo,
		passwordCfg: params.PasswordConfig,
	}
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	exists, err := s.repo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "checking username")
	}
	if exists {
		return nil, apperrors.New(apperrors.CodeConflict, "El username ya existe")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "hashing password")
	}

	var result RegisterResult
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		tienda := models.Tienda{Nombre: req.TiendaNombre, Email: req.Email}
		if err := repoTx.CreateTienda(ctx, &tienda); err != nil {
			return err
		}

		jefe := models.Usuario{
			TiendaID:       tienda.ID,
			Username:       req.Username,
			PasswordHash:   hash,
			NombreCompleto: req.NombreCompleto,
			Email:          req.Email,
			Rol:            enums.RoleJefe,
			Estado:         enums.RecordActivo,
		}
		if err := repoTx.CreateUsuario(ctx, &jefe); err != nil {
			return err
		}

		result = RegisterResult{UserID: jefe.ID, TiendaID: tienda.ID}
		return nil
	})
	if err != nil {
		// A concurrent signup can slip past the pre-check; the unique
		// index turns it into the same conflict.
		if db.IsUniqueViolation(err) {
			return nil, apperrors.New(apperrors.CodeConflict, "El username ya existe")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "registering user")
	}
	return &result, nil
}

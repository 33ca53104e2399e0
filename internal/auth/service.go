package auth

import (
	"context"

	"github.com/tienditamejorada/tiendita-backend/pkg/auth/session"
	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
	"github.com/tienditamejorada/tiendita-backend/pkg/metrics"
	"github.com/tienditamejorada/tiendita-backend/pkg/security"
)

// The same message covers unknown usernames, wrong passwords, and disabled
// accounts so responses do not reveal which one happened.
const invalidCredentialsMessage = "Credenciales inválidas"

// LoginRequest carries the login form.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserPayload is the user block returned by login.
type UserPayload struct {
	ID             uint           `json:"id"`
	Username       string         `json:"username"`
	NombreCompleto string         `json:"nombre_completo"`
	Email          string         `json:"email"`
	Rol            enums.UserRole `json:"rol"`
	TiendaID       uint           `json:"tienda_id"`
	TiendaNombre   string         `json:"tienda_nombre"`
}

// LoginResult bundles the authenticated user and the fresh session token.
type LoginResult struct {
	User  UserPayload
	Token string
}

type userFinder interface {
	FindActiveByUsername(ctx context.Context, username string) (*UsuarioConTienda, error)
}

type sessionCreator interface {
	Create(ctx context.Context, usuarioID uint, meta session.Metadata) (string, error)
	Revoke(ctx context.Context, token string) error
}

// Service exposes login and logout.
type Service interface {
	Login(ctx context.Context, req LoginRequest, meta session.Metadata) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
}

type service struct {
	users    userFinder
	sessions sessionCreator
}

// ServiceParams bundles the dependencies for the auth service.
type ServiceParams struct {
	Users    userFinder
	Sessions sessionCreator
}

func NewService(params ServiceParams) Service {
	return &service{users: params.Users, sessions: params.Sessions}
}

func (s *service) Login(ctx context.Context, req LoginRequest, meta session.Metadata) (*LoginResult, error) {
	user, err := s.users.FindActiveByUsername(ctx, req.Username)
	if err != nil {
		if db.IsNotFound(err) {
			metrics.AuthLoginFailuresTotal.Inc()
			return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "looking up user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		metrics.AuthLoginFailuresTotal.Inc()
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := s.sessions.Create(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User: UserPayload{
			ID:             user.ID,
			Username:       user.Username,
			NombreCompleto: user.NombreCompleto,
			Email:          user.Email,
			Rol:            user.Rol,
			TiendaID:       user.TiendaID,
			TiendaNombre:   user.TiendaNombre,
		},
		Token: token,
	}, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

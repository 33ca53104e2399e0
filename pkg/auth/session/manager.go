// Package session manages server-side login sessions backed by the database.
// Tokens are opaque random strings; nothing about the user is encoded in them.
package session

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tienditamejorada/tiendita-backend/pkg/config"
	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
	"github.com/tienditamejorada/tiendita-backend/pkg/security"
)

// Metadata captures client details recorded alongside a session.
type Metadata struct {
	IP        string
	UserAgent string
}

// Session is the resolved identity behind a valid token.
type Session struct {
	UsuarioID uint
	TiendaID  uint
	Username  string
	Rol       enums.UserRole
}

// Manager creates, resolves, and revokes sessions.
type Manager struct {
	client *db.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewManager builds a Manager. A TTL of zero means sessions never expire
// on their own and only logout revokes them.
func NewManager(client *db.Client, cfg config.SessionConfig) *Manager {
	return &Manager{
		client: client,
		ttl:    cfg.TTL,
		now:    time.Now,
	}
}

// Create mints a fresh token and persists the session row.
func (m *Manager) Create(ctx context.Context, usuarioID uint, meta Metadata) (string, error) {
	token, err := security.NewSessionToken()
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, err, "generating session token")
	}

	row := models.SesionUsuario{
		UsuarioID: usuarioID,
		Token:     token,
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
		Estado:    enums.SessionActiva,
	}
	if err := m.client.DB().WithContext(ctx).Create(&row).Error; err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, err, "persisting session")
	}
	return token, nil
}

// Resolve maps a token to its owning user. It fails with an unauthorized
// error when the token is unknown, revoked, expired, or the user is no
// longer active.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "No autorizado")
	}

	var row models.SesionUsuario
	err := m.client.DB().WithContext(ctx).
		Where("token_sesion = ? AND estado = ?", token, enums.SessionActiva).
		First(&row).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.New(apperrors.CodeUnauthorized, "No autorizado")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "looking up session")
	}

	if m.ttl > 0 && m.now().After(row.FechaCreacion.Add(m.ttl)) {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "No autorizado")
	}

	var user models.Usuario
	err = m.client.DB().WithContext(ctx).
		Where("id = ? AND estado = ?", row.UsuarioID, enums.RecordActivo).
		First(&user).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.New(apperrors.CodeUnauthorized, "No autorizado")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "looking up session user")
	}

	return &Session{
		UsuarioID: user.ID,
		TiendaID:  user.TiendaID,
		Username:  user.Username,
		Rol:       user.Rol,
	}, nil
}

// Revoke marks the session revoked. Revoking an already-revoked or unknown
// token is a no-op so that repeated logouts stay idempotent.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := m.client.DB().WithContext(ctx).
		Model(&models.SesionUsuario{}).
		Where("token_sesion = ?", token).
		Update("estado", enums.SessionRevocada).Error
	if err != nil && !db.IsNotFound(err) {
		return apperrors.Wrap(apperrors.CodeInternal, err, "revoking session")
	}
	return nil
}

// RevokeAllForUser revokes every active session belonging to a user. Called
// when a user is disabled so stale tokens stop working immediately.
func (m *Manager) RevokeAllForUser(ctx context.Context, tx *gorm.DB, usuarioID uint) error {
	err := tx.WithContext(ctx).
		Model(&models.SesionUsuario{}).
		Where("usuario_id = ? AND estado = ?", usuarioID, enums.SessionActiva).
		Update("estado", enums.SessionRevocada).Error
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "revoking user sessions")
	}
	return nil
}

package middleware

import (
	"context"

	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
)

type contextKey string

const (
	ctxUsuarioID contextKey = "usuario_id"
	ctxTiendaID  contextKey = "tienda_id"
	ctxRol       contextKey = "rol"
	ctxToken     contextKey = "session_token"
)

// WithUsuarioID injects the authenticated user id.
func WithUsuarioID(ctx context.Context, usuarioID uint) context.Context {
	return context.WithValue(ctx, ctxUsuarioID, usuarioID)
}

// WithTiendaID injects the tenant id resolved from the session.
func WithTiendaID(ctx context.Context, tiendaID uint) context.Context {
	return context.WithValue(ctx, ctxTiendaID, tiendaID)
}

// WithRol injects the authenticated user's role.
func WithRol(ctx context.Context, rol enums.UserRole) context.Context {
	return context.WithValue(ctx, ctxRol, rol)
}

// WithSessionToken stores the raw token so logout can revoke it.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxToken, token)
}

func UsuarioIDFromContext(ctx context.Context) uint {
	if v, ok := ctx.Value(ctxUsuarioID).(uint); ok {
		return v
	}
	return 0
}

func TiendaIDFromContext(ctx context.Context) uint {
	if v, ok := ctx.Value(ctxTiendaID).(uint); ok {
		return v
	}
	return 0
}

func RolFromContext(ctx context.Context) enums.UserRole {
	if v, ok := ctx.Value(ctxRol).(enums.UserRole); ok {
		return v
	}
	return ""
}

func SessionTokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxToken).(string); ok {
		return v
	}
	return ""
}

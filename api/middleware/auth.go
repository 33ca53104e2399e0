package middleware

import (
	"net/http"

	"github.com/tienditamejorada/tiendita-backend/api/responses"
	"github.com/tienditamejorada/tiendita-backend/api/validators"
	"github.com/tienditamejorada/tiendita-backend/pkg/auth/session"
	"github.com/tienditamejorada/tiendita-backend/pkg/logger"
)

// Auth resolves the session token and injects the caller's identity. The
// token may arrive in the Authorization header or the token query param,
// which is how the legacy storefront client sends it.
func Auth(sessions *session.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := validators.ExtractSessionToken(r)
			sess, err := sessions.Resolve(ctx, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = WithUsuarioID(ctx, sess.UsuarioID)
			ctx = WithTiendaID(ctx, sess.TiendaID)
			ctx = WithRol(ctx, sess.Rol)
			ctx = WithSessionToken(ctx, token)
			if logg != nil {
				ctx = logg.WithUsuarioID(ctx, sess.UsuarioID)
				ctx = logg.WithTiendaID(ctx, sess.TiendaID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIP exposes the best-effort remote address for request metadata.
func ClientIP(r *http.Request) string {
	return clientIP(r)
}

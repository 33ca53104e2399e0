package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tienditamejorada/tiendita-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an id, minting one when the client did
// not send its own, and stamps it on the response and the request logger.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := sanitizeRequestID(r.Header.Get(requestIDHeader))
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sanitizeRequestID keeps client-supplied ids usable as a log field. Anything
// oversized or with control characters gets replaced by a fresh id.
func sanitizeRequestID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 64 {
		return ""
	}
	for _, c := range id {
		if c < 0x20 || c == 0x7f {
			return ""
		}
	}
	return id
}

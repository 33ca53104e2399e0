package validators

import (
	"net/http"
	"strings"
)

// ExtractSessionToken pulls the session token from the Authorization header
// (with or without the Bearer prefix) or from the token query parameter.
func ExtractSessionToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header != "" {
		if strings.HasPrefix(strings.ToLower(header), "bearer ") {
			return strings.TrimSpace(header[len("bearer "):])
		}
		return header
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
)

// URLParamUint extracts a positive integer path parameter.
func URLParamUint(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, apperrors.New(apperrors.CodeValidation, "El identificador en la ruta es inválido")
	}
	return uint(parsed), nil
}

// QueryString returns a trimmed query parameter value.
func QueryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

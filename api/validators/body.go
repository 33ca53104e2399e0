package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// DecodeJSONBody parses and validates a request body into dst. Unknown
// fields are ignored: clients round-trip listed records (with enriched
// fields like categoria_nombre) straight back into update requests.
func DecodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperrors.New(apperrors.CodeValidation, "Cuerpo de la solicitud vacío")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.New(apperrors.CodeValidation, "Cuerpo de la solicitud vacío")
		}
		return apperrors.Wrap(apperrors.CodeValidation, err, "JSON inválido")
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return apperrors.New(apperrors.CodeValidation, formatValidationErrors(fieldErrs))
		}
		return apperrors.Wrap(apperrors.CodeValidation, err, "Solicitud inválida")
	}
	return nil
}

func formatValidationErrors(fieldErrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("El campo %s es requerido", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("El campo %s debe ser un email válido", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("El campo %s es demasiado corto", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("El campo %s es demasiado largo", fe.Field()))
		case "gt", "gte":
			msgs = append(msgs, fmt.Sprintf("El campo %s debe ser mayor", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("El campo %s tiene un valor no permitido", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("El campo %s es inválido", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}

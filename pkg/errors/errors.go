package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeNotFound         Code = "NOT_FOUND"
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"
	CodeConflict         Code = "CONFLICT"
	CodeRateLimit        Code = "RATE_LIMIT_EXCEEDED"
	CodeNotImplemented   Code = "NOT_IMPLEMENTED"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeDependency       Code = "DEPENDENCY_ERROR"
)

// Metadata drives how each code is rendered on the wire. MessageAllowed guards
// against leaking internal detail: when false the public fallback is used and
// the real error only reaches the log.
type Metadata struct {
	HTTPStatus     int
	PublicMessage  string
	MessageAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "Solicitud inválida",
		MessageAllowed: true,
	},
	CodeUnauthorized: {
		HTTPStatus:     http.StatusUnauthorized,
		PublicMessage:  "No autorizado",
		MessageAllowed: true,
	},
	CodeForbidden: {
		HTTPStatus:     http.StatusForbidden,
		PublicMessage:  "Acceso denegado",
		MessageAllowed: true,
	},
	CodeNotFound: {
		HTTPStatus:     http.StatusNotFound,
		PublicMessage:  "Recurso no encontrado",
		MessageAllowed: true,
	},
	CodeMethodNotAllowed: {
		HTTPStatus:     http.StatusMethodNotAllowed,
		PublicMessage:  "Método no permitido",
		MessageAllowed: true,
	},
	CodeConflict: {
		HTTPStatus:     http.StatusConflict,
		PublicMessage:  "Conflicto detectado",
		MessageAllowed: true,
	},
	CodeRateLimit: {
		HTTPStatus:     http.StatusTooManyRequests,
		PublicMessage:  "Demasiadas solicitudes",
		MessageAllowed: false,
	},
	CodeNotImplemented: {
		HTTPStatus:     http.StatusNotImplemented,
		PublicMessage:  "No implementado",
		MessageAllowed: true,
	},
	CodeInternal: {
		HTTPStatus:     http.StatusInternalServerError,
		PublicMessage:  "Error interno del servidor",
		MessageAllowed: false,
	},
	CodeDependency: {
		HTTPStatus:     http.StatusServiceUnavailable,
		PublicMessage:  "Servicio no disponible",
		MessageAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// errors that did not originate here.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

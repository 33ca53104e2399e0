package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
)

type loginBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func request(body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(http.MethodPost, "/", nil)
	}
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBodyHappyPath(t *testing.T) {
	var dst loginBody
	err := DecodeJSONBody(request(`{"username":"ana","password":"secreto"}`), &dst)
	if err != nil {
		t.Fatalf("DecodeJSONBody: %v", err)
	}
	if dst.Username != "ana" || dst.Password != "secreto" {
		t.Fatalf("unexpected decode result: %+v", dst)
	}
}

func TestDecodeJSONBodyEmptyBody(t *testing.T) {
	var dst loginBody
	err := DecodeJSONBody(request(""), &dst)
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Cuerpo de la solicitud vacío") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestDecodeJSONBodyIgnoresUnknownFields(t *testing.T) {
	var dst loginBody
	err := DecodeJSONBody(request(`{"username":"ana","password":"secreto","id":7,"estado":"activo"}`), &dst)
	if err != nil {
		t.Fatalf("expected unknown keys to be ignored, got %v", err)
	}
	if dst.Username != "ana" {
		t.Fatalf("unexpected decode result: %+v", dst)
	}
}

func TestDecodeJSONBodyMalformedJSON(t *testing.T) {
	var dst loginBody
	err := DecodeJSONBody(request("{"), &dst)
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRequiredFieldMessages(t *testing.T) {
	var dst loginBody
	err := DecodeJSONBody(request(`{"username":"ana"}`), &dst)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "El campo password es requerido") {
		t.Fatalf("expected spanish required message keyed by json tag, got %v", err)
	}
}

func TestDecodeJSONBodyEmailFormat(t *testing.T) {
	var dst loginBody
	err := DecodeJSONBody(request(`{"username":"ana","password":"x","email":"no-es-correo"}`), &dst)
	if err == nil {
		t.Fatal("expected validation error for bad email")
	}
	if !strings.Contains(err.Error(), "email") {
		t.Fatalf("expected message to mention the field, got %v", err)
	}
}

func TestExtractSessionToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	if got := ExtractSessionToken(r); got != "abc123" {
		t.Fatalf("bearer header: got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "abc123")
	if got := ExtractSessionToken(r); got != "abc123" {
		t.Fatalf("raw header: got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/?token=abc123", nil)
	if got := ExtractSessionToken(r); got != "abc123" {
		t.Fatalf("query fallback: got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := ExtractSessionToken(r); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}

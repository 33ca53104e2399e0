package security

import (
	"strings"
	"testing"

	"github.com/tienditamejorada/tiendita-backend/pkg/config"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secreto123", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyPassword("secreto123", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = VerifyPassword("otra-cosa", hash)
	if err != nil {
		t.Fatalf("VerifyPassword mismatch: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	a, err := HashPassword("igual", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("igual", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestVerifyPasswordRejectsGarbage(t *testing.T) {
	if _, err := VerifyPassword("x", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestNewSessionToken(t *testing.T) {
	a, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	b, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if a == b {
		t.Fatal("expected unique tokens")
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestIDEchoesClientID(t *testing.T) {
	var seen string
	h := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.Header().Get("X-Request-Id")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "abc-123" {
		t.Fatalf("expected client id to be kept, got %q", seen)
	}
	if rec.Header().Get("X-Request-Id") != "abc-123" {
		t.Fatalf("expected id on the response, got %q", rec.Header().Get("X-Request-Id"))
	}
}

func TestRequestIDReplacesUnusableIDs(t *testing.T) {
	for name, supplied := range map[string]string{
		"missing":   "",
		"oversized": strings.Repeat("x", 65),
		"control":   "abc\r\ndef",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if supplied != "" {
			req.Header.Set("X-Request-Id", supplied)
		}
		rec := httptest.NewRecorder()
		RequestID(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

		got := rec.Header().Get("X-Request-Id")
		if got == "" || got == supplied {
			t.Fatalf("%s: expected a fresh id, got %q", name, got)
		}
		if len(got) != 36 {
			t.Fatalf("%s: expected a uuid, got %q", name, got)
		}
	}
}

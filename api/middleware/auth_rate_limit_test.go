package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeStore struct {
	counts map[string]int64
	ttls   map[string]time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) IncrWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	f.counts[key]++
	f.ttls[key] = ttl
	return f.counts[key], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func postLogin(h http.Handler, ip, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.RemoteAddr = ip + ":51234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimitBlocksPerIP(t *testing.T) {
	store := newFakeStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	h := AuthRateLimit(policy, store, nil)(okHandler())

	for i := 0; i < 2; i++ {
		if rec := postLogin(h, "10.0.0.1", `{"username":"ana"}`); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected pass, got %d", i+1, rec.Code)
		}
	}
	if rec := postLogin(h, "10.0.0.1", `{"username":"ana"}`); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", rec.Code)
	}
	// A different address is counted separately.
	if rec := postLogin(h, "10.0.0.2", `{"username":"ana"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected other ip to pass, got %d", rec.Code)
	}
}

func TestAuthRateLimitBlocksPerUsername(t *testing.T) {
	store := newFakeStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	h := AuthRateLimit(policy, store, nil)(okHandler())

	if rec := postLogin(h, "10.0.0.1", `{"username":"Ana"}`); rec.Code != http.StatusOK {
		t.Fatalf("first attempt: got %d", rec.Code)
	}
	// Case and surrounding spaces are normalized before hashing.
	if rec := postLogin(h, "10.0.0.9", `{"username":" ana "}`); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for same username, got %d", rec.Code)
	}
	if rec := postLogin(h, "10.0.0.9", `{"username":"beto"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected other username to pass, got %d", rec.Code)
	}
}

func TestAuthRateLimitPreservesBody(t *testing.T) {
	store := newFakeStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)

	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("reading body downstream: %v", err)
		}
		seen = string(raw)
		w.WriteHeader(http.StatusOK)
	})
	h := AuthRateLimit(policy, store, nil)(inner)

	body := `{"username":"ana","password":"secreto"}`
	if rec := postLogin(h, "10.0.0.1", body); rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	if seen != body {
		t.Fatalf("downstream body altered: %q", seen)
	}
}

func TestAuthRateLimitDisabledWithoutStore(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 1, 1)
	h := AuthRateLimit(policy, nil, nil)(okHandler())

	for i := 0; i < 5; i++ {
		if rec := postLogin(h, "10.0.0.1", `{"username":"ana"}`); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected pass without store, got %d", i+1, rec.Code)
		}
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:40000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if ip := clientIP(req); ip != "203.0.113.7" {
		t.Fatalf("expected forwarded ip, got %q", ip)
	}

	req.Header.Del("X-Forwarded-For")
	if ip := clientIP(req); ip != "192.168.1.5" {
		t.Fatalf("expected remote addr host, got %q", ip)
	}
}

package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeCounterStore struct {
	mu     sync.Mutex
	counts map[string]int64
	ttls   map[string]time.Duration
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (s *fakeCounterStore) IncrWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key]++
	if s.counts[key] == 1 {
		s.ttls[key] = ttl
	}
	return s.counts[key], nil
}

func loginAttempt(handler http.Handler, ip, email string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"email":"` + email + `","password":"hunter2"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.RemoteAddr = ip + ":51724"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimitPerIP(t *testing.T) {
	store := newFakeCounterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 3, 0)
	handler := AuthRateLimit(policy, store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		if rec := loginAttempt(handler, "10.0.0.9", "a@example.com"); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	rec := loginAttempt(handler, "10.0.0.9", "a@example.com")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	if rec := loginAttempt(handler, "10.0.0.42", "a@example.com"); rec.Code != http.StatusOK {
		t.Fatalf("other ip status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthRateLimitPerEmail(t *testing.T) {
	store := newFakeCounterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 2)
	handler := AuthRateLimit(policy, store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The downstream handler must still be able to read the body.
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if !strings.Contains(string(payload), "@example.com") {
			t.Fatalf("body not replayed: %q", payload)
		}
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		ip := []string{"10.0.0.1", "10.0.0.2"}[i]
		if rec := loginAttempt(handler, ip, "target@example.com"); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d status = %d", i+1, rec.Code)
		}
	}

	if rec := loginAttempt(handler, "10.0.0.3", "target@example.com"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	if rec := loginAttempt(handler, "10.0.0.3", "someone.else@example.com"); rec.Code != http.StatusOK {
		t.Fatalf("other email status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthRateLimitEmailCaseInsensitive(t *testing.T) {
	store := newFakeCounterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	handler := AuthRateLimit(policy, store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	if rec := loginAttempt(handler, "10.0.0.1", "Shopper@Example.COM"); rec.Code != http.StatusOK {
		t.Fatalf("first attempt status = %d", rec.Code)
	}
	if rec := loginAttempt(handler, "10.0.0.2", "shopper@example.com"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := AuthRateLimit(policy, newFakeCounterStore(), testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 25; i++ {
		if rec := loginAttempt(handler, "10.0.0.1", "a@example.com"); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d status = %d", i+1, rec.Code)
		}
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "192.168.0.10:51724"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if got := clientIP(req); got != "203.0.113.7" {
		t.Fatalf("clientIP = %q, want 203.0.113.7", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := clientIP(req); got != "192.168.0.10" {
		t.Fatalf("clientIP = %q, want 192.168.0.10", got)
	}
}

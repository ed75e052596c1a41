package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"busfinder/internal/domain"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubParser struct {
	rc  domain.RequestContext
	err error
}

func (p stubParser) ParseToken(string) (domain.RequestContext, error) { return p.rc, p.err }

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	handlers := append(mw, func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })
	r.GET("/x", handlers...)
	return r
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Header().Get("X-Request-ID") == "" || w.Body.String() != w.Header().Get("X-Request-ID") {
		t.Fatalf("expected generated request id, header=%q body=%q", w.Header().Get("X-Request-ID"), w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" {
		t.Fatalf("incoming request id should be kept, got %q", w.Body.String())
	}
}

func TestRequireAuthAndRoles(t *testing.T) {
	cases := []struct {
		name   string
		header string
		parser stubParser
		want   int
	}{
		{"no header", "", stubParser{}, http.StatusUnauthorized},
		{"bad token", "Bearer nope", stubParser{err: domain.UnauthorizedError{Err: errors.New("bad")}}, http.StatusUnauthorized},
		{"wrong role", "Bearer t", stubParser{rc: domain.RequestContext{Subject: "bob", Role: "viewer"}}, http.StatusForbidden},
		{"admin", "Bearer t", stubParser{rc: domain.RequestContext{Subject: "admin", Role: "Admin"}}, http.StatusOK},
	}
	for _, tc := range cases {
		r := newEngine(RequireAuth(tc.parser), RequireRoles("admin"))
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, w.Code, tc.want)
		}
	}
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(1, 2))

	codes := []int{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(RateLimit(0, 0))
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d limited while disabled", i)
		}
	}
}

func TestRateLimiterPrunesOncePerTTL(t *testing.T) {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	now := start
	rl := NewRateLimiter(rate.Inf, 1, time.Minute)
	rl.Now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	now = start.Add(30 * time.Second)
	rl.Allow("10.0.0.2")
	if rl.Len() != 2 {
		t.Fatalf("expected 2 clients, got %d", rl.Len())
	}

	// first sweep since start: 10.0.0.1 has been idle 90s, 10.0.0.2 only 60s
	now = start.Add(90 * time.Second)
	rl.Allow("10.0.0.3")
	if rl.Len() != 2 {
		t.Fatalf("idle client should be swept, got %d clients", rl.Len())
	}

	// within a ttl of the last sweep nothing is scanned, even stale entries stay
	now = start.Add(140 * time.Second)
	rl.Allow("10.0.0.4")
	if rl.Len() != 3 {
		t.Fatalf("no sweep expected yet, got %d clients", rl.Len())
	}
}

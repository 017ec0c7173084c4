package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/keepsakeapp/keepsake-server/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

func TestRequireAuth_MissingToken(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"bare scheme", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Access token required"}`, rec.Body.String())
		})
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodGet, "/api/items", "v4.local.not-a-real-token", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, rec.Body.String())
}

func TestRequireAuth_ValidToken(t *testing.T) {
	srv := newTestServer(t, nil)
	token := registerUser(t, srv, "authed@example.com")

	rec := doJSON(t, srv, http.MethodGet, "/api/items", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitAuth(t *testing.T) {
	limiter := ratelimit.New(0.1, 1)
	defer limiter.Stop()
	srv := newTestServer(t, limiter)

	body := map[string]string{"email": "x@example.com", "password": "nope"}

	first := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", body)
	assert.NotEqual(t, http.StatusTooManyRequests, first.Code)

	second := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name string
		xff  string
		xri  string
		addr string
		want string
	}{
		{"forwarded chain", "203.0.113.9, 10.0.0.1", "", "10.0.0.2:1234", "203.0.113.9"},
		{"single forwarded", "203.0.113.9", "", "10.0.0.2:1234", "203.0.113.9"},
		{"real ip", "", "203.0.113.7", "10.0.0.2:1234", "203.0.113.7"},
		{"remote addr", "", "", "10.0.0.2:1234", "10.0.0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.addr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}

			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solara-studio/backoffice/internal/auth"
	"github.com/solara-studio/backoffice/internal/domain/user"
	apperr "github.com/solara-studio/backoffice/internal/errors"
)

// stubVerifier accepts exactly one token.
type stubVerifier struct {
	valid  string
	claims auth.Claims
}

func (v stubVerifier) VerifyToken(token string) (auth.Claims, error) {
	if token != v.valid {
		return auth.Claims{}, apperr.Unauthorized("invalid or expired token")
	}
	return v.claims, nil
}

func okHandler(sawIdentity *auth.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sawIdentity != nil {
			sawIdentity.UserID = GetUserID(r.Context())
			sawIdentity.Role = GetRole(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	verifier := stubVerifier{
		valid:  "good-token",
		claims: auth.Claims{UserID: "u1", Email: "a@example.com", Role: user.RoleAdmin},
	}
	var seen auth.Claims
	mw := NewAuthMiddleware(verifier, nil, nil)
	handler := mw.Handler(okHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/tickets", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "u1", seen.UserID)
	assert.Equal(t, user.RoleAdmin, seen.Role)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	mw := NewAuthMiddleware(stubVerifier{valid: "good-token"}, nil, nil)
	handler := mw.Handler(okHandler(nil))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"wrong token", "Bearer bad-token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/tickets", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)
			assert.Equal(t, http.StatusUnauthorized, resp.Code)
		})
	}
}

func TestAuthMiddlewareSkipPaths(t *testing.T) {
	mw := NewAuthMiddleware(stubVerifier{valid: "good-token"}, nil, []string{"/healthz"})
	handler := mw.Handler(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRateLimiterThrottlesPerClient(t *testing.T) {
	limiter := NewRateLimiter(1, 2, nil)
	handler := limiter.Handler(okHandler(nil))

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/tickets", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/tickets", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRateLimiterKeysByAuthenticatedUser(t *testing.T) {
	limiter := NewRateLimiter(1, 1, nil)
	handler := limiter.Handler(okHandler(nil))

	send := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/tickets", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		if userID != "" {
			req = req.WithContext(context.WithValue(req.Context(), userIDKey, userID))
		}
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp.Code
	}

	// Same client address; each user draws from its own bucket.
	assert.Equal(t, http.StatusOK, send("user-a"))
	assert.Equal(t, http.StatusOK, send("user-b"))
	assert.Equal(t, http.StatusTooManyRequests, send("user-a"))
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter := NewRateLimiter(1, 1, nil)
	for i := 0; i <= 10000; i++ {
		limiter.getLimiter(fmt.Sprintf("key-%d", i))
	}
	require.Greater(t, len(limiter.limiters), 10000)

	limiter.Cleanup()
	assert.Empty(t, limiter.limiters)
}

func TestCORSPreflight(t *testing.T) {
	mw := NewCORSMiddleware([]string{"https://admin.example.com"})
	handler := mw.Handler(okHandler(nil))

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/tickets", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, "https://admin.example.com", resp.Header().Get("Access-Control-Allow-Origin"))

	// Unlisted origins get no CORS headers.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/tickets", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
}

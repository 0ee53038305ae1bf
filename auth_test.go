package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkedHandler(am *AuthMiddleware) http.Handler {
	return am.Check(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMiddlewareBearerToken(t *testing.T) {
	am := NewAuthMiddleware("secret")
	handler := checkedHandler(am)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	am := NewAuthMiddleware("secret")
	handler := checkedHandler(am)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status?token=secret", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	am := NewAuthMiddleware("secret")
	handler := checkedHandler(am)

	// No token
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong token
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status?token=wrong", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed Authorization header
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Authorization", "secret")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionTokenRoundtrip(t *testing.T) {
	am := NewAuthMiddleware("secret")

	token, err := am.GenerateSessionToken()
	require.NoError(t, err)
	assert.NoError(t, am.VerifySessionToken(token))

	// A token signed with a different key is rejected
	other := NewAuthMiddleware("other-secret")
	assert.Error(t, other.VerifySessionToken(token))

	assert.Error(t, am.VerifySessionToken("not-a-jwt"))
}

func TestSessionTokenAcceptedByMiddleware(t *testing.T) {
	am := NewAuthMiddleware("secret")
	handler := checkedHandler(am)

	token, err := am.GenerateSessionToken()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateTokenIsRandom(t *testing.T) {
	assert.NotEqual(t, generateToken(), generateToken())
	assert.NotEmpty(t, generateToken())
}

package api

import (
	"net/http"
	"testing"

	"github.com/keepsakeapp/keepsake-server/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRegister(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Mira Voss",
		"email":    "mira@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp service.AuthResponse
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Mira Voss", resp.User.Name)
	assert.Equal(t, "mira@example.com", resp.User.Email)
}

func TestHandleRegister_MissingFields(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "half@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.NotEmpty(t, body["error"])
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t, nil)
	registerUser(t, srv, "taken@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Other",
		"email":    "taken@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email already registered"}`, rec.Body.String())
}

func TestHandleLogin(t *testing.T) {
	srv := newTestServer(t, nil)
	registerUser(t, srv, "login@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp service.AuthResponse
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "login@example.com", resp.User.Email)
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	srv := newTestServer(t, nil)
	registerUser(t, srv, "victim@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "victim@example.com",
		"password": "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
}

func TestHandleLogin_MissingFields(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email and password required"}`, rec.Body.String())
}

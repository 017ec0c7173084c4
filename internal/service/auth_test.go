package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/keepsakeapp/keepsake-server/internal/domain"
	domainerrors "github.com/keepsakeapp/keepsake-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register_Success(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Register(ctx, RegisterRequest{
		Name:     "Mira Voss",
		Email:    "mira@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "Mira Voss", resp.User.Name)
	assert.Equal(t, "mira@example.com", resp.User.Email)

	// The new account starts with exactly one collection, the default one.
	collections, err := env.store.ListCollections(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Equal(t, domain.DefaultCollectionName, collections[0].Name)
}

func TestAuthService_Register_Validation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Email: "a@example.com", Password: "password123"}},
		{"missing email", RegisterRequest{Name: "A", Password: "password123"}},
		{"bad email", RegisterRequest{Name: "A", Email: "nope", Password: "password123"}},
		{"missing password", RegisterRequest{Name: "A", Email: "a@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	registerTestUser(t, env, "taken@example.com")

	// Same address, different case: still a conflict.
	_, err := env.auth.Register(ctx, RegisterRequest{
		Name:     "Other",
		Email:    "Taken@Example.com",
		Password: "password123",
	})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Email already registered", domainErr.Message)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
}

func TestAuthService_Login_Success(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	userID := registerTestUser(t, env, "login@example.com")

	resp, err := env.auth.Login(ctx, LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, userID, resp.User.ID)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	registerTestUser(t, env, "victim@example.com")

	// Wrong password and unknown email produce the identical error.
	_, wrongPassErr := env.auth.Login(ctx, LoginRequest{
		Email:    "victim@example.com",
		Password: "not-the-password",
	})
	_, unknownEmailErr := env.auth.Login(ctx, LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})

	for _, err := range []error{wrongPassErr, unknownEmailErr} {
		require.Error(t, err)
		var domainErr *domainerrors.Error
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "Invalid credentials", domainErr.Message)
		assert.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus())
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Login(ctx, LoginRequest{Email: "a@example.com"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Email and password required", domainErr.Message)
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	userID := registerTestUser(t, env, "verify@example.com")

	resp, err := env.auth.Login(ctx, LoginRequest{
		Email:    "verify@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	user, claims, err := env.auth.VerifyAccessToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "verify@example.com", claims.Email)

	// Garbage tokens are rejected.
	_, _, err = env.auth.VerifyAccessToken(ctx, "v4.local.garbage")
	assert.Error(t, err)
}

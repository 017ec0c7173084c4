package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/keepsakeapp/keepsake-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Invalid(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)

	_, err = HashPassword(strings.Repeat("a", maxPasswordLength+1))
	assert.Error(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	// A garbage stored hash verifies as false, not as an error.
	ok, err := VerifyPassword("not-a-hash", "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenRoundTrip(t *testing.T) {
	keyHex, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	svc, err := NewTokenService(keyHex, time.Hour)
	require.NoError(t, err)

	user := &domain.User{ID: "user-123", Email: "mira@example.com"}
	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "mira@example.com", claims.Email)
	assert.Equal(t, "user-123", claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	keyHex, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	svc, err := NewTokenService(keyHex, -time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(&domain.User{ID: "user-exp", Email: "x@example.com"})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	keyA, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)
	keyB, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	issuer, err := NewTokenService(keyA, time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenService(keyB, time.Hour)
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken(&domain.User{ID: "user-wk", Email: "x@example.com"})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestLoadOrGenerateKey_Stable(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	// Second load returns the persisted key.
	second, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/keepsakeapp/keepsake-server/internal/auth"
	"github.com/keepsakeapp/keepsake-server/internal/blob"
	"github.com/keepsakeapp/keepsake-server/internal/store"
	"github.com/keepsakeapp/keepsake-server/internal/store/sqlite"
	"github.com/keepsakeapp/keepsake-server/internal/validation"
	"github.com/stretchr/testify/require"
)

// testEnv bundles the services under test with their shared backing store.
type testEnv struct {
	store       store.Store
	blobs       *blob.Store
	auth        *AuthService
	collections *CollectionService
	tags        *TagService
	items       *ItemService
}

// setupTestEnv creates all services with temporary storage for testing.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(dir+"/test.db", logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	blobs, err := blob.NewStore(dir + "/uploads")
	require.NoError(t, err)

	keyHex, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(keyHex, 168*time.Hour)
	require.NoError(t, err)

	v := validation.New()

	return &testEnv{
		store:       s,
		blobs:       blobs,
		auth:        NewAuthService(s, tokenService, v, logger),
		collections: NewCollectionService(s, v, logger),
		tags:        NewTagService(s, v, logger),
		items:       NewItemService(s, blobs, v, logger),
	}
}

// registerTestUser registers a user and returns their ID.
func registerTestUser(t *testing.T, env *testEnv, email string) string {
	t.Helper()
	resp, err := env.auth.Register(context.Background(), RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return resp.User.ID
}

package blob

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("creates store with valid path", func(t *testing.T) {
		tmpDir := t.TempDir()
		uploadPath := filepath.Join(tmpDir, "uploads")

		store, err := NewStore(uploadPath)
		require.NoError(t, err)
		require.NotNil(t, store)

		info, err := os.Stat(uploadPath)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("returns error for empty path", func(t *testing.T) {
		store, err := NewStore("")
		assert.Error(t, err)
		assert.Nil(t, store)
		assert.Contains(t, err.Error(), "base path cannot be empty")
	})
}

func TestStore_Save(t *testing.T) {
	t.Run("saves stream and keeps extension", func(t *testing.T) {
		store := setupTestStore(t)

		saved, err := store.Save(strings.NewReader("hello world"), "report.pdf")
		require.NoError(t, err)
		assert.Equal(t, int64(11), saved.Size)
		assert.True(t, strings.HasSuffix(saved.Filename, ".pdf"))
		assert.NotEqual(t, "report.pdf", saved.Filename)

		f, err := store.Open(saved.Filename)
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(data))
	})

	t.Run("generates unique names for identical uploads", func(t *testing.T) {
		store := setupTestStore(t)

		a, err := store.Save(strings.NewReader("same"), "dup.txt")
		require.NoError(t, err)
		b, err := store.Save(strings.NewReader("same"), "dup.txt")
		require.NoError(t, err)

		assert.NotEqual(t, a.Filename, b.Filename)
	})

	t.Run("handles names without extension", func(t *testing.T) {
		store := setupTestStore(t)

		saved, err := store.Save(strings.NewReader("x"), "README")
		require.NoError(t, err)
		assert.NotContains(t, saved.Filename, ".")
	})
}

func TestStore_Open(t *testing.T) {
	t.Run("returns error for non-existent blob", func(t *testing.T) {
		store := setupTestStore(t)

		f, err := store.Open("missing.bin")
		assert.Error(t, err)
		assert.Nil(t, f)
		assert.Contains(t, err.Error(), "blob not found")
	})

	t.Run("rejects traversal names", func(t *testing.T) {
		store := setupTestStore(t)

		f, err := store.Open("../../etc/passwd")
		assert.Error(t, err)
		assert.Nil(t, f)
	})
}

func TestStore_Delete(t *testing.T) {
	t.Run("deletes existing blob", func(t *testing.T) {
		store := setupTestStore(t)

		saved, err := store.Save(strings.NewReader("bye"), "note.txt")
		require.NoError(t, err)
		require.True(t, store.Exists(saved.Filename))

		err = store.Delete(saved.Filename)
		require.NoError(t, err)
		assert.False(t, store.Exists(saved.Filename))
	})

	t.Run("succeeds when blob does not exist", func(t *testing.T) {
		store := setupTestStore(t)

		err := store.Delete("gone.bin")
		assert.NoError(t, err) // Not an error to delete non-existent file.
	})

	t.Run("returns error for empty filename", func(t *testing.T) {
		store := setupTestStore(t)

		err := store.Delete("")
		assert.Error(t, err)
	})
}

func TestStore_Path(t *testing.T) {
	t.Run("generates path under base", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		path, err := store.Path("abc.png")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "abc.png"), path)
	})

	t.Run("rejects separators and traversal", func(t *testing.T) {
		store := setupTestStore(t)

		for _, name := range []string{"a/b.png", `a\b.png`, "..", "../x"} {
			_, err := store.Path(name)
			assert.Error(t, err, "name %q should be rejected", name)
		}
	})
}

// setupTestStore creates a Store instance with a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

// Package blob stores uploaded item files on the local filesystem.
package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SavedBlob describes a blob that was written to disk.
type SavedBlob struct {
	// Filename is the generated on-disk name, e.g. "3f2a...-9c.pdf".
	Filename string
	// Size is the number of bytes written.
	Size int64
}

// Store manages uploaded file blobs under a single directory.
// Thread-safe for concurrent operations. On-disk names are generated
// UUIDs with the upload's original extension, so callers never collide
// and client-supplied names never reach the filesystem.
type Store struct {
	basePath string
	mu       sync.RWMutex // Protects file operations
}

// NewStore creates a blob store rooted at basePath, creating the
// directory if needed.
func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}

	return &Store{
		basePath: basePath,
	}, nil
}

// BasePath returns the directory blobs are stored under.
func (s *Store) BasePath() string {
	return s.basePath
}

// Save streams r to a new blob file. The original filename contributes
// only its extension; the stored name is a fresh UUID.
func (s *Store) Save(r io.Reader, originalName string) (*SavedBlob, error) {
	ext := filepath.Ext(originalName)
	filename := uuid.NewString() + ext

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.basePath, filename)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob file: %w", err)
	}

	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write blob file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to close blob file: %w", err)
	}

	return &SavedBlob{
		Filename: filename,
		Size:     size,
	}, nil
}

// Open opens a stored blob for reading. The caller closes the file.
func (s *Store) Open(filename string) (*os.File, error) {
	path, err := s.Path(filename)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob not found for %s: %w", filename, err)
		}
		return nil, fmt.Errorf("failed to open blob file: %w", err)
	}
	return f, nil
}

// Exists checks whether a blob is present on disk.
func (s *Store) Exists(filename string) bool {
	path, err := s.Path(filename)
	if err != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err = os.Stat(path)
	return err == nil
}

// Delete removes a stored blob. Deleting a missing blob is not an error.
func (s *Store) Delete(filename string) error {
	path, err := s.Path(filename)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			// Already deleted, not an error.
			return nil
		}
		return fmt.Errorf("failed to delete blob file: %w", err)
	}
	return nil
}

// Path returns the full filesystem path for a stored blob name.
// Rejects names carrying path separators or traversal elements.
func (s *Store) Path(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}
	if strings.ContainsAny(filename, `/\`) || filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid blob filename %q", filename)
	}
	return filepath.Join(s.basePath, filename), nil
}

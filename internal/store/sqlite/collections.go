package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/keepsakeapp/keepsake-server/internal/domain"
	"github.com/keepsakeapp/keepsake-server/internal/id"
	"github.com/keepsakeapp/keepsake-server/internal/store"
)

// collectionColumns is the ordered list of columns selected in collection queries.
// Must match the scan order in scanCollection.
const collectionColumns = `id, owner_id, name, created_at, updated_at`

// scanCollection scans a sql.Row (or sql.Rows via its Scan method) into a domain.Collection.
func scanCollection(scanner interface{ Scan(dest ...any) error }) (*domain.Collection, error) {
	var c domain.Collection

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateCollection inserts a new collection. Duplicate names for the same
// owner are not rejected; the schema carries no uniqueness constraint.
func (s *Store) CreateCollection(ctx context.Context, c *domain.Collection) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (id, owner_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID,
		c.OwnerID,
		c.Name,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	return err
}

// ListCollections returns all collections owned by ownerID, ordered by name.
func (s *Store) ListCollections(ctx context.Context, ownerID string) ([]*domain.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE owner_id = ? ORDER BY name ASC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []*domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if collections == nil {
		collections = []*domain.Collection{}
	}

	return collections, nil
}

// GetCollectionByName retrieves a collection by exact name for an owner.
// When duplicates exist, the oldest row wins.
// Returns store.ErrNotFound if no such collection exists.
func (s *Store) GetCollectionByName(ctx context.Context, ownerID, name string) (*domain.Collection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections
		WHERE owner_id = ? AND name = ? ORDER BY created_at ASC LIMIT 1`,
		ownerID, name)

	c, err := scanCollection(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindOrCreateCollection finds an existing collection by name or creates a
// new one. Returns (collection, created, error) where created is true if a
// new row was made.
//
// Lookup-then-insert with no guarding constraint: two concurrent calls with
// the same name can both insert. A duplicate row is an accepted outcome.
func (s *Store) FindOrCreateCollection(ctx context.Context, ownerID, name string) (*domain.Collection, bool, error) {
	existing, err := s.GetCollectionByName(ctx, ownerID, name)
	if err == nil {
		return existing, false, nil
	}
	if err != store.ErrNotFound {
		return nil, false, err
	}

	collectionID, err := id.Generate("col")
	if err != nil {
		return nil, false, fmt.Errorf("generate collection id: %w", err)
	}

	c := &domain.Collection{
		ID:      collectionID,
		OwnerID: ownerID,
		Name:    name,
	}
	c.InitTimestamps()

	if err := s.CreateCollection(ctx, c); err != nil {
		return nil, false, err
	}

	return c, true, nil
}

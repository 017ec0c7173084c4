package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/keepsakeapp/keepsake-server/internal/domain"
	"github.com/keepsakeapp/keepsake-server/internal/id"
	"github.com/keepsakeapp/keepsake-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, owner_id, name, created_at, updated_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.OwnerID,
		&t.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag. Returns store.ErrAlreadyExists when the owner
// already has a tag with the same name (enforced by UNIQUE (owner_id, name)).
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, owner_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID,
		t.OwnerID,
		t.Name,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ListTags returns all tags owned by ownerID, ordered by name.
func (s *Store) ListTags(ctx context.Context, ownerID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE owner_id = ? ORDER BY name ASC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}

// GetTagByName retrieves a tag by exact name for an owner.
// Returns store.ErrNotFound if no such tag exists.
func (s *Store) GetTagByName(ctx context.Context, ownerID, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE owner_id = ? AND name = ?`,
		ownerID, name)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// FindOrCreateTag finds an existing tag by name or creates a new one.
// Returns (tag, created, error) where created is true if a new row was made.
//
// Unlike collections, tags carry a UNIQUE (owner_id, name) constraint, so a
// lost insert race is recovered by re-reading the winner's row.
func (s *Store) FindOrCreateTag(ctx context.Context, ownerID, name string) (*domain.Tag, bool, error) {
	existing, err := s.GetTagByName(ctx, ownerID, name)
	if err == nil {
		return existing, false, nil
	}
	if err != store.ErrNotFound {
		return nil, false, err
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, false, fmt.Errorf("generate tag id: %w", err)
	}

	t := &domain.Tag{
		ID:      tagID,
		OwnerID: ownerID,
		Name:    name,
	}
	t.InitTimestamps()

	err = s.CreateTag(ctx, t)
	if err == store.ErrAlreadyExists {
		// Lost the race; another request inserted the same name.
		winner, rerr := s.GetTagByName(ctx, ownerID, name)
		if rerr != nil {
			return nil, false, rerr
		}
		return winner, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return t, true, nil
}

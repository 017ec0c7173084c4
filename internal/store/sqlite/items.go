package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/keepsakeapp/keepsake-server/internal/domain"
	"github.com/keepsakeapp/keepsake-server/internal/store"
)

// itemColumns is the ordered list of item columns selected in item queries,
// qualified for joined reads. Must match the scan order in scanItemView.
const itemColumns = `i.id, i.owner_id, i.name, i.kind, i.content, i.url,
	i.blob_path, i.size_display, i.collection_id, i.created_at, i.updated_at,
	c.name`

// scanItemView scans a joined item row (itemColumns plus the LEFT JOINed
// collection name) into a domain.ItemView. TagNames is left nil; the caller
// resolves tags in a second query.
func scanItemView(scanner interface{ Scan(dest ...any) error }) (*domain.ItemView, error) {
	var v domain.ItemView

	var (
		content        sql.NullString
		url            sql.NullString
		blobPath       sql.NullString
		collectionID   sql.NullString
		collectionName sql.NullString
		createdAt      string
		updatedAt      string
	)

	err := scanner.Scan(
		&v.ID,
		&v.OwnerID,
		&v.Name,
		&v.Kind,
		&content,
		&url,
		&blobPath,
		&v.SizeDisplay,
		&collectionID,
		&createdAt,
		&updatedAt,
		&collectionName,
	)
	if err != nil {
		return nil, err
	}

	v.Content = content.String
	v.URL = url.String
	v.BlobPath = blobPath.String
	v.CollectionID = collectionID.String
	v.CollectionName = collectionName.String

	v.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	v.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// CreateItem inserts an item and its tag associations in one transaction.
// Either the item and every tag link land together, or none do.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item, tagIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO items (id, owner_id, name, kind, content, url, blob_path,
			size_display, collection_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.OwnerID,
		item.Name,
		string(item.Kind),
		nullString(item.Content),
		nullString(item.URL),
		nullString(item.BlobPath),
		item.SizeDisplay,
		nullString(item.CollectionID),
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	now := formatTime(time.Now())
	for _, tagID := range tagIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO item_tags (item_id, tag_id, created_at)
			VALUES (?, ?, ?)`,
			item.ID, tagID, now)
		if err != nil {
			return fmt.Errorf("insert item tag: %w", err)
		}
	}

	return tx.Commit()
}

// ListItems returns the owner's items as views, newest first. Search matches
// a case-insensitive substring of name or content; CollectionName restricts
// to items whose collection has exactly that name.
func (s *Store) ListItems(ctx context.Context, ownerID string, filters store.ItemFilters) ([]*domain.ItemView, error) {
	query := `SELECT ` + itemColumns + `
		FROM items i
		LEFT JOIN collections c ON c.id = i.collection_id
		WHERE i.owner_id = ?`
	args := []any{ownerID}

	if filters.Search != "" {
		query += ` AND (LOWER(i.name) LIKE ? OR LOWER(COALESCE(i.content, '')) LIKE ?)`
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		args = append(args, pattern, pattern)
	}
	if filters.CollectionName != "" {
		query += ` AND c.name = ?`
		args = append(args, filters.CollectionName)
	}

	query += ` ORDER BY i.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []*domain.ItemView
	for rows.Next() {
		v, err := scanItemView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, v := range views {
		v.TagNames, err = s.itemTagNames(ctx, v.ID)
		if err != nil {
			return nil, err
		}
	}

	if views == nil {
		views = []*domain.ItemView{}
	}

	return views, nil
}

// GetItem retrieves a single item view scoped to the owner.
// Returns store.ErrNotFound if the item does not exist or belongs to someone
// else; callers cannot tell the two cases apart.
func (s *Store) GetItem(ctx context.Context, ownerID, itemID string) (*domain.ItemView, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+`
		FROM items i
		LEFT JOIN collections c ON c.id = i.collection_id
		WHERE i.owner_id = ? AND i.id = ?`,
		ownerID, itemID)

	v, err := scanItemView(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	v.TagNames, err = s.itemTagNames(ctx, v.ID)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// DeleteItem removes an item and its tag associations in one transaction,
// scoped to the owner. Returns store.ErrNotFound if no owned row matched.
func (s *Store) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Links first; the item row decides whether anything existed at all.
	_, err = tx.ExecContext(ctx,
		`DELETE FROM item_tags WHERE item_id IN
			(SELECT id FROM items WHERE id = ? AND owner_id = ?)`,
		itemID, ownerID)
	if err != nil {
		return fmt.Errorf("delete item tags: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND owner_id = ?`,
		itemID, ownerID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}

// itemTagNames returns the tag names linked to an item, ordered by name.
func (s *Store) itemTagNames(ctx context.Context, itemID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name FROM item_tags it
		JOIN tags t ON t.id = it.tag_id
		WHERE it.item_id = ?
		ORDER BY t.name ASC`,
		itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Package store defines the persistence contract for the Keepsake server.
// The concrete implementation lives in store/sqlite.
package store

import (
	"context"

	"github.com/keepsakeapp/keepsake-server/internal/domain"
)

// ItemFilters narrows ListItems results. Zero values mean "no filter".
// Tag filtering is intentionally absent here: the service layer applies the
// superset match over each view's resolved tag names in a single stage.
type ItemFilters struct {
	// Search matches a case-insensitive substring of item name OR content.
	Search string
	// CollectionName restricts to items in the exactly-named collection.
	CollectionName string
}

// Store is the persistence interface consumed by the service layer.
// All reads and writes are scoped to an owner; a row belonging to another
// user behaves as if it does not exist.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// Collections.
	CreateCollection(ctx context.Context, c *domain.Collection) error
	ListCollections(ctx context.Context, ownerID string) ([]*domain.Collection, error)
	GetCollectionByName(ctx context.Context, ownerID, name string) (*domain.Collection, error)
	FindOrCreateCollection(ctx context.Context, ownerID, name string) (*domain.Collection, bool, error)

	// Tags.
	CreateTag(ctx context.Context, t *domain.Tag) error
	ListTags(ctx context.Context, ownerID string) ([]*domain.Tag, error)
	GetTagByName(ctx context.Context, ownerID, name string) (*domain.Tag, error)
	FindOrCreateTag(ctx context.Context, ownerID, name string) (*domain.Tag, bool, error)

	// Items.
	CreateItem(ctx context.Context, item *domain.Item, tagIDs []string) error
	ListItems(ctx context.Context, ownerID string, filters ItemFilters) ([]*domain.ItemView, error)
	GetItem(ctx context.Context, ownerID, itemID string) (*domain.ItemView, error)
	DeleteItem(ctx context.Context, ownerID, itemID string) error

	Close() error
}

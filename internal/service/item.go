package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/keepsakeapp/keepsake-server/internal/blob"
	"github.com/keepsakeapp/keepsake-server/internal/domain"
	domainerrors "github.com/keepsakeapp/keepsake-server/internal/errors"
	"github.com/keepsakeapp/keepsake-server/internal/id"
	"github.com/keepsakeapp/keepsake-server/internal/store"
	"github.com/keepsakeapp/keepsake-server/internal/validation"
)

// ItemService manages the item catalog: creation of the three content
// variants, filtered listing, deletion, and blob downloads.
type ItemService struct {
	store     store.Store
	blobs     *blob.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewItemService creates a new item service.
func NewItemService(store store.Store, blobs *blob.Store, validator *validation.Validator, logger *slog.Logger) *ItemService {
	return &ItemService{
		store:     store,
		blobs:     blobs,
		validator: validator,
		logger:    logger,
	}
}

// ListItemsQuery narrows a listing. All fields are optional.
type ListItemsQuery struct {
	// Search matches a case-insensitive substring of name or content.
	Search string
	// Collection restricts to items in the exactly-named collection.
	Collection string
	// Tags restricts to items whose tag set contains every named tag.
	Tags []string
}

// CreateItemRequest contains the data for a text or link item create.
type CreateItemRequest struct {
	Name           string   `json:"name" validate:"required"`
	Kind           string   `json:"type" validate:"required,oneof=text link"`
	Content        string   `json:"content"`
	URL            string   `json:"url"`
	CollectionName string   `json:"collectionName"`
	Tags           []string `json:"tags"`
}

// ItemResponse is the public view of an item, as returned by listings
// and creates.
type ItemResponse struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Kind       domain.Kind `json:"type"`
	Content    string      `json:"content,omitempty"`
	URL        string      `json:"url,omitempty"`
	FilePath   string      `json:"filePath,omitempty"`
	Size       string      `json:"size"`
	Collection string      `json:"collection,omitempty"`
	Tags       []string    `json:"tags"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// DeleteItemResponse acknowledges a successful delete.
type DeleteItemResponse struct {
	Success bool `json:"success"`
}

// newItemResponse maps a store view to the wire shape.
func newItemResponse(v *domain.ItemView) ItemResponse {
	tags := v.TagNames
	if tags == nil {
		tags = []string{}
	}
	return ItemResponse{
		ID:         v.ID,
		Name:       v.Name,
		Kind:       v.Kind,
		Content:    v.Content,
		URL:        v.URL,
		FilePath:   v.BlobPath,
		Size:       v.SizeDisplay,
		Collection: v.CollectionName,
		Tags:       tags,
		CreatedAt:  v.CreatedAt,
	}
}

// List returns the owner's items matching the query, newest first.
// Search and collection narrowing happen in the store; the tag superset
// match is applied here over each item's resolved tag names.
func (s *ItemService) List(ctx context.Context, ownerID string, query ListItemsQuery) ([]ItemResponse, error) {
	views, err := s.store.ListItems(ctx, ownerID, store.ItemFilters{
		Search:         query.Search,
		CollectionName: query.Collection,
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	out := make([]ItemResponse, 0, len(views))
	for _, v := range views {
		if len(query.Tags) > 0 && !v.HasAllTags(query.Tags) {
			continue
		}
		out = append(out, newItemResponse(v))
	}
	return out, nil
}

// Create makes a text or link item. The kind-appropriate payload is
// required: content for text, url for link.
func (s *ItemService) Create(ctx context.Context, ownerID string, req CreateItemRequest) (*ItemResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, domainerrors.Validation("Name and type required")
	}

	kind := domain.Kind(req.Kind)
	switch kind {
	case domain.KindText:
		if req.Content == "" {
			return nil, domainerrors.Validation("content is required for text items")
		}
	case domain.KindLink:
		if req.URL == "" {
			return nil, domainerrors.Validation("url is required for link items")
		}
	}

	item := &domain.Item{
		OwnerID: ownerID,
		Name:    req.Name,
		Kind:    kind,
	}
	switch kind {
	case domain.KindText:
		item.Content = req.Content
		item.SizeDisplay = domain.TextSizeDisplay(req.Content)
	case domain.KindLink:
		item.URL = req.URL
		item.SizeDisplay = domain.LinkSizeDisplay
	}

	return s.insertItem(ctx, item, req.CollectionName, req.Tags)
}

// CreateFile makes a file item from an already-stored blob.
func (s *ItemService) CreateFile(ctx context.Context, ownerID string, saved *blob.SavedBlob, originalName, collectionName string, tags []string) (*ItemResponse, error) {
	if saved == nil {
		return nil, domainerrors.Validation("No file uploaded")
	}

	item := &domain.Item{
		OwnerID:     ownerID,
		Name:        originalName,
		Kind:        domain.KindFile,
		BlobPath:    saved.Filename,
		SizeDisplay: domain.FileSizeDisplay(saved.Size),
	}

	return s.insertItem(ctx, item, collectionName, tags)
}

// insertItem resolves the collection and tags, persists the item with its
// tag links, and builds the response.
func (s *ItemService) insertItem(ctx context.Context, item *domain.Item, collectionName string, tagNames []string) (*ItemResponse, error) {
	if collectionName != "" {
		collection, _, err := s.store.FindOrCreateCollection(ctx, item.OwnerID, collectionName)
		if err != nil {
			return nil, fmt.Errorf("resolve collection: %w", err)
		}
		item.CollectionID = collection.ID
	}

	tagIDs := make([]string, 0, len(tagNames))
	resolvedTags := make([]string, 0, len(tagNames))
	for _, name := range tagNames {
		if name == "" {
			continue
		}
		tag, _, err := s.store.FindOrCreateTag(ctx, item.OwnerID, name)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		tagIDs = append(tagIDs, tag.ID)
		resolvedTags = append(resolvedTags, tag.Name)
	}

	itemID, err := id.Generate("item")
	if err != nil {
		return nil, fmt.Errorf("generate item ID: %w", err)
	}
	item.ID = itemID
	item.InitTimestamps()

	if err := s.store.CreateItem(ctx, item, tagIDs); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Item created",
			"item_id", item.ID,
			"owner_id", item.OwnerID,
			"kind", item.Kind,
		)
	}

	// Tag names are reported in storage order.
	sort.Strings(resolvedTags)

	return &ItemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Kind:       item.Kind,
		Content:    item.Content,
		URL:        item.URL,
		FilePath:   item.BlobPath,
		Size:       item.SizeDisplay,
		Collection: collectionName,
		Tags:       resolvedTags,
		CreatedAt:  item.CreatedAt,
	}, nil
}

// Delete removes an item, its tag links, and (for file items) the backing
// blob. Blob removal is best-effort: a failed unlink is logged but does
// not fail the delete.
func (s *ItemService) Delete(ctx context.Context, ownerID, itemID string) (*DeleteItemResponse, error) {
	view, err := s.store.GetItem(ctx, ownerID, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Item not found")
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	if err := s.store.DeleteItem(ctx, ownerID, itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Item not found")
		}
		return nil, fmt.Errorf("delete item: %w", err)
	}

	if view.IsFile() {
		if err := s.blobs.Delete(view.BlobPath); err != nil {
			if s.logger != nil {
				s.logger.Error("Failed to delete item blob",
					"item_id", itemID,
					"blob", view.BlobPath,
					"error", err,
				)
			}
		}
	}

	if s.logger != nil {
		s.logger.Info("Item deleted", "item_id", itemID, "owner_id", ownerID)
	}

	return &DeleteItemResponse{Success: true}, nil
}

// Download opens the blob behind a file item. Returns the open file and
// the item's display name for the download filename. Text and link items
// are never downloadable.
func (s *ItemService) Download(ctx context.Context, ownerID, itemID string) (*os.File, string, error) {
	view, err := s.store.GetItem(ctx, ownerID, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", domainerrors.NotFound("File not found")
		}
		return nil, "", fmt.Errorf("get item: %w", err)
	}

	if !view.IsFile() {
		return nil, "", domainerrors.NotFound("File not found")
	}

	f, err := s.blobs.Open(view.BlobPath)
	if err != nil {
		return nil, "", domainerrors.NotFound("File not found").WithCause(err)
	}

	return f, view.Name, nil
}

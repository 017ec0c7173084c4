package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/keepsakeapp/keepsake-server/internal/domain"
	domainerrors "github.com/keepsakeapp/keepsake-server/internal/errors"
	"github.com/keepsakeapp/keepsake-server/internal/id"
	"github.com/keepsakeapp/keepsake-server/internal/store"
	"github.com/keepsakeapp/keepsake-server/internal/validation"
)

// CollectionService manages per-user named collections.
type CollectionService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store store.Store, validator *validation.Validator, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateCollectionRequest contains the data for an explicit collection create.
type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required"`
}

// CollectionResponse is the public view of a collection.
type CollectionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List returns all of the owner's collections, ordered by name.
func (s *CollectionService) List(ctx context.Context, ownerID string) ([]CollectionResponse, error) {
	collections, err := s.store.ListCollections(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	out := make([]CollectionResponse, 0, len(collections))
	for _, c := range collections {
		out = append(out, CollectionResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// Create inserts a new collection. It does not check for an existing name:
// repeating a name yields a second row, matching the creation contract.
func (s *CollectionService) Create(ctx context.Context, ownerID string, req CreateCollectionRequest) (*CollectionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, domainerrors.Validation("Collection name required")
	}

	collectionID, err := id.Generate("col")
	if err != nil {
		return nil, fmt.Errorf("generate collection ID: %w", err)
	}

	c := &domain.Collection{
		ID:      collectionID,
		OwnerID: ownerID,
		Name:    req.Name,
	}
	c.InitTimestamps()

	if err := s.store.CreateCollection(ctx, c); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Collection created", "collection_id", collectionID, "owner_id", ownerID)
	}

	return &CollectionResponse{ID: c.ID, Name: c.Name}, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	domainerrors "github.com/keepsakeapp/keepsake-server/internal/errors"
	"github.com/keepsakeapp/keepsake-server/internal/store"
	"github.com/keepsakeapp/keepsake-server/internal/validation"
)

// TagService manages per-user named tags.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, validator *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateTagRequest contains the data for a tag create.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required"`
}

// TagResponse is the public view of a tag.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List returns all of the owner's tags, ordered by name.
func (s *TagService) List(ctx context.Context, ownerID string) ([]TagResponse, error) {
	tags, err := s.store.ListTags(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}
	return out, nil
}

// Create returns the owner's tag with the given name, creating it if
// necessary. The created flag is true only when a new row was inserted,
// so handlers can pick the right status code.
func (s *TagService) Create(ctx context.Context, ownerID string, req CreateTagRequest) (*TagResponse, bool, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, false, domainerrors.Validation("Tag name required")
	}

	tag, created, err := s.store.FindOrCreateTag(ctx, ownerID, req.Name)
	if err != nil {
		return nil, false, fmt.Errorf("find or create tag: %w", err)
	}

	if created && s.logger != nil {
		s.logger.Info("Tag created", "tag_id", tag.ID, "owner_id", ownerID)
	}

	return &TagResponse{ID: tag.ID, Name: tag.Name}, created, nil
}

package api

import (
	"net/http"

	"github.com/keepsakeapp/keepsake-server/internal/http/response"
	"github.com/keepsakeapp/keepsake-server/internal/service"
)

// handleListCollections returns the caller's collections, ordered by name.
func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	collections, err := s.collectionService.List(ctx, getUserID(ctx))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, collections, s.logger)
}

// handleCreateCollection creates a new collection for the caller.
func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.CreateCollectionRequest
	if err := decodeRequest(r, &req); err != nil {
		response.BadRequest(w, "Collection name required", s.logger)
		return
	}

	collection, err := s.collectionService.Create(ctx, getUserID(ctx), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, collection, s.logger)
}

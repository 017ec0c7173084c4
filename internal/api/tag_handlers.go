package api

import (
	"net/http"

	"github.com/keepsakeapp/keepsake-server/internal/http/response"
	"github.com/keepsakeapp/keepsake-server/internal/service"
)

// handleListTags returns the caller's tags, ordered by name.
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tags, err := s.tagService.List(ctx, getUserID(ctx))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, tags, s.logger)
}

// handleCreateTag returns the named tag, creating it if necessary.
// A fresh tag is 201; repeating an existing name is 200.
func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.CreateTagRequest
	if err := decodeRequest(r, &req); err != nil {
		response.BadRequest(w, "Tag name required", s.logger)
		return
	}

	tag, created, err := s.tagService.Create(ctx, getUserID(ctx), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if created {
		response.Created(w, tag, s.logger)
		return
	}
	response.Success(w, tag, s.logger)
}

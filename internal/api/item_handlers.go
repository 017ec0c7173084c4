package api

import (
	"encoding/json/v2"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/keepsakeapp/keepsake-server/internal/http/response"
	"github.com/keepsakeapp/keepsake-server/internal/service"
)

// maxMultipartMemory bounds how much of an upload is buffered in memory
// before spilling to disk.
const maxMultipartMemory = 10 << 20 // 10 MiB

// handleListItems returns the caller's items, newest first, narrowed by
// the optional search, collection, and tags query parameters.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := service.ListItemsQuery{
		Search:     r.URL.Query().Get("search"),
		Collection: r.URL.Query().Get("collection"),
		Tags:       splitTagsParam(r.URL.Query().Get("tags")),
	}

	items, err := s.itemService.List(ctx, getUserID(ctx), query)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, items, s.logger)
}

// handleCreateItem creates a text or link item from a JSON body.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.CreateItemRequest
	if err := decodeRequest(r, &req); err != nil {
		response.BadRequest(w, "Name and type required", s.logger)
		return
	}

	item, err := s.itemService.Create(ctx, getUserID(ctx), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, item, s.logger)
}

// handleUploadItem creates a file item from a multipart form. The file
// goes in the "file" field; "collectionName" and "tags" (a JSON array
// string) are optional.
func (s *Server) handleUploadItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.BadRequest(w, "No file uploaded", s.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file uploaded", s.logger)
		return
	}
	defer file.Close()

	saved, err := s.blobs.Save(file, header.Filename)
	if err != nil {
		s.logger.Error("Failed to store uploaded file", "error", err, "name", header.Filename)
		response.InternalError(w, "Server error", s.logger)
		return
	}

	item, err := s.itemService.CreateFile(ctx, getUserID(ctx), saved,
		header.Filename, r.FormValue("collectionName"), parseTagsField(r.FormValue("tags")))
	if err != nil {
		// The row never landed, so the blob is an orphan.
		if delErr := s.blobs.Delete(saved.Filename); delErr != nil {
			s.logger.Error("Failed to remove orphaned blob", "error", delErr, "blob", saved.Filename)
		}
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, item, s.logger)
}

// handleDeleteItem removes an item and, for file items, its stored blob.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := s.itemService.Delete(ctx, getUserID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleDownloadItem streams a file item's blob as an attachment named
// after the item.
func (s *Server) handleDownloadItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, name, err := s.itemService.Download(ctx, getUserID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		s.logger.Error("Failed to stat blob for download", "error", err)
		response.InternalError(w, "Server error", s.logger)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, fi.ModTime(), f)
}

// splitTagsParam splits the comma-separated tags query parameter,
// dropping empty entries.
func splitTagsParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseTagsField parses the multipart "tags" field, which clients send as
// a JSON array string. Anything unparseable means no tags.
func parseTagsField(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

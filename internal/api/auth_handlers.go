package api

import (
	"net/http"

	"github.com/keepsakeapp/keepsake-server/internal/http/response"
	"github.com/keepsakeapp/keepsake-server/internal/service"
)

// handleRegister creates a new user account and returns a bearer token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeRequest(r, &req); err != nil {
		response.BadRequest(w, "All fields are required", s.logger)
		return
	}

	resp, err := s.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, resp, s.logger)
}

// handleLogin authenticates a user and returns a fresh bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeRequest(r, &req); err != nil {
		response.BadRequest(w, "Email and password required", s.logger)
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

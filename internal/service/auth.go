// Package service implements the application's business logic on top of the
// store, blob, and auth layers. Services accept typed request records,
// validate them, and return response records ready for serialization.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/keepsakeapp/keepsake-server/internal/auth"
	"github.com/keepsakeapp/keepsake-server/internal/domain"
	domainerrors "github.com/keepsakeapp/keepsake-server/internal/errors"
	"github.com/keepsakeapp/keepsake-server/internal/id"
	"github.com/keepsakeapp/keepsake-server/internal/store"
	"github.com/keepsakeapp/keepsake-server/internal/validation"
)

// AuthService handles user registration, login, and token verification.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.Store,
	tokenService *auth.TokenService,
	validator *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		validator:    validator,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the bearer token and public user record returned by
// both register and login.
type AuthResponse struct {
	Success bool              `json:"success"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

// Register creates a new user account, provisions the default collection,
// and returns a signed access token.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("Email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Every new account starts with one collection.
	collectionID, err := id.Generate("col")
	if err != nil {
		return nil, fmt.Errorf("generate collection ID: %w", err)
	}
	defaultCollection := &domain.Collection{
		ID:      collectionID,
		OwnerID: userID,
		Name:    domain.DefaultCollectionName,
	}
	defaultCollection.InitTimestamps()
	if err := s.store.CreateCollection(ctx, defaultCollection); err != nil {
		return nil, fmt.Errorf("create default collection: %w", err)
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User registered",
			"user_id", userID,
			"email", user.Email,
		)
	}

	return &AuthResponse{
		Success: true,
		Token:   token,
		User:    user.Public(),
	}, nil
}

// Login authenticates a user and returns a fresh access token.
// Unknown emails and wrong passwords produce the same error, so callers
// cannot probe for registered addresses.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, domainerrors.Validation("Email and password required")
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("Invalid credentials")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("Invalid credentials")
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User logged in", "user_id", user.ID)
	}

	return &AuthResponse{
		Success: true,
		Token:   token,
		User:    user.Public(),
	}, nil
}

// VerifyAccessToken validates a token and returns the associated user.
// Used by the authentication middleware.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.User, *auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid token: %w", err)
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, errors.New("user not found")
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	return user, claims, nil
}

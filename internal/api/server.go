// Package api provides the HTTP API server and handlers for the Keepsake application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/keepsakeapp/keepsake-server/internal/blob"
	"github.com/keepsakeapp/keepsake-server/internal/config"
	"github.com/keepsakeapp/keepsake-server/internal/http/response"
	"github.com/keepsakeapp/keepsake-server/internal/ratelimit"
	"github.com/keepsakeapp/keepsake-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authService       *service.AuthService
	collectionService *service.CollectionService
	tagService        *service.TagService
	itemService       *service.ItemService
	blobs             *blob.Store
	authLimiter       *ratelimit.KeyedRateLimiter
	router            *chi.Mux
	logger            *slog.Logger
	corsOrigins       []string
	maxUploadBytes    int64
}

// NewServer creates a new HTTP server with all routes configured.
// authLimiter may be nil to disable rate limiting on the auth endpoints.
func NewServer(
	cfg *config.Config,
	authService *service.AuthService,
	collectionService *service.CollectionService,
	tagService *service.TagService,
	itemService *service.ItemService,
	blobs *blob.Store,
	authLimiter *ratelimit.KeyedRateLimiter,
	logger *slog.Logger,
) *Server {
	s := &Server{
		authService:       authService,
		collectionService: collectionService,
		tagService:        tagService,
		itemService:       itemService,
		blobs:             blobs,
		authLimiter:       authLimiter,
		router:            chi.NewRouter(),
		logger:            logger,
		corsOrigins:       cfg.Server.CORSOrigins,
		maxUploadBytes:    cfg.Storage.MaxUploadBytes,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		// Auth endpoints (public, rate limited per client IP).
		r.Route("/auth", func(r chi.Router) {
			r.Use(s.rateLimitAuth)
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		// Collections (require auth).
		r.Route("/collections", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListCollections)
			r.Post("/", s.handleCreateCollection)
		})

		// Tags (require auth).
		r.Route("/tags", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListTags)
			r.Post("/", s.handleCreateTag)
		})

		// Items (require auth).
		r.Route("/items", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListItems)
			r.Post("/", s.handleCreateItem)
			r.Post("/upload", s.handleUploadItem)
			r.Delete("/{id}", s.handleDeleteItem)
			r.Get("/{id}/download", s.handleDownloadItem)
		})
	})

	// Raw blob access. Blob filenames are random UUIDs.
	s.router.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(s.blobs.BasePath()))))
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}

// Package di provides dependency injection configuration for the Keepsake server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/keepsakeapp/keepsake-server/internal/auth"
	"github.com/keepsakeapp/keepsake-server/internal/blob"
	"github.com/keepsakeapp/keepsake-server/internal/config"
	"github.com/keepsakeapp/keepsake-server/internal/di/providers"
	"github.com/keepsakeapp/keepsake-server/internal/logger"
	"github.com/keepsakeapp/keepsake-server/internal/service"
	"github.com/keepsakeapp/keepsake-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideBlobStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideAuthLimiter)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideCollectionService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideItemService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of every provider in dependency order.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*blob.Store](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*providers.AuthLimiterHandle](injector)

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.CollectionService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.ItemService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}

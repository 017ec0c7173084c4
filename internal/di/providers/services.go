package providers

import (
	"github.com/samber/do/v2"

	"github.com/keepsakeapp/keepsake-server/internal/auth"
	"github.com/keepsakeapp/keepsake-server/internal/blob"
	"github.com/keepsakeapp/keepsake-server/internal/logger"
	"github.com/keepsakeapp/keepsake-server/internal/ratelimit"
	"github.com/keepsakeapp/keepsake-server/internal/service"
	"github.com/keepsakeapp/keepsake-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// AuthLimiterHandle wraps the auth rate limiter with Shutdownable.
type AuthLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *AuthLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideAuthLimiter provides the per-IP rate limiter for the auth endpoints.
func ProvideAuthLimiter(i do.Injector) (*AuthLimiterHandle, error) {
	return &AuthLimiterHandle{
		KeyedRateLimiter: ratelimit.New(authRatePerSecond, authBurst),
	}, nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, validator, log.Logger), nil
}

// ProvideCollectionService provides the collection service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCollectionService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideItemService provides the item service.
func ProvideItemService(i do.Injector) (*service.ItemService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	blobs := do.MustInvoke[*blob.Store](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewItemService(storeHandle.Store, blobs, validator, log.Logger), nil
}

package providers

import (
	"github.com/samber/do/v2"

	"github.com/keepsakeapp/keepsake-server/internal/blob"
	"github.com/keepsakeapp/keepsake-server/internal/config"
	"github.com/keepsakeapp/keepsake-server/internal/logger"
)

// ProvideBlobStore provides the filesystem store for uploaded files.
func ProvideBlobStore(i do.Injector) (*blob.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	blobs, err := blob.NewStore(cfg.Storage.UploadPath)
	if err != nil {
		return nil, err
	}

	log.Info("Upload storage ready", "path", cfg.Storage.UploadPath)

	return blobs, nil
}

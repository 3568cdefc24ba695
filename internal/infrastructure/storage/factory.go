package storage

import (
	"context"
	"fmt"

	"sharebin/internal/domain/service"
	"sharebin/pkg/config"
)

// NewFromConfig selects the object-store backend at startup.
func NewFromConfig(ctx context.Context, cfg *config.Config) (service.ObjectStore, error) {
	switch cfg.StorageBackend {
	case "local":
		return NewLocalStorageClient(cfg.StorageRoot)
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 backend requires S3_BUCKET to be set")
		}
		return NewS3StorageClient(ctx, S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

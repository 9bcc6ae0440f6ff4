package storage

import (
	"context"
	"fmt"

	"certvault/config"
)

// Storage abstracts where uploaded certificate files live. The pipeline only
// needs the raw bytes for extraction and a stored reference for later
// retrieval.
type Storage interface {
	// Save stores the file and returns the key it was stored under
	Save(ctx context.Context, filename string, data []byte, contentType string) (string, error)

	// Get retrieves a previously stored file
	Get(ctx context.Context, key string) ([]byte, error)

	// URL returns a retrievable URL for the stored file
	URL(ctx context.Context, key string) (string, error)
}

// New creates the storage backend selected by configuration
func New() (Storage, error) {
	cfg := config.AppConfig
	switch cfg.StorageDriver {
	case "local", "":
		return NewLocalStorage(cfg.UploadDir), nil
	case "s3":
		return NewS3Storage(cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Endpoint)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}

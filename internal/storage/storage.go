package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"paperdesk_backend/internal/config"
)

// Storage abstracts where uploaded documents live. Keys are
// slash-separated paths relative to the backend root.
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	URL(ctx context.Context, key string) (string, error)
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Size(ctx context.Context, key string) (int64, error)
}

// New builds the backend selected in configuration.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case "local", "":
		return NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}

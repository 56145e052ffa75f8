// Package storage keeps uploaded files on the local filesystem or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"

	documentapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/document"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrEmptyKey is returned when an operation is called without a storage key
var ErrEmptyKey = errors.New("storage key is required")

// New returns the backend selected by cfg.Provider. The S3 bucket is created
// when it does not exist yet.
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (documentapp.ObjectStorage, error) {
	switch cfg.Provider {
	case "", config.StorageLocal:
		return NewLocalObjectStorage(cfg.LocalDir, cfg.PublicBaseURL)
	case config.StorageS3:
		s, err := NewS3ObjectStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Provider)
	}
}

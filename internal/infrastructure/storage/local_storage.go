package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	documentapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/document"
)

var _ documentapp.ObjectStorage = (*LocalObjectStorage)(nil)

// ErrInvalidKey is returned for keys that would escape the storage root
var ErrInvalidKey = errors.New("invalid storage key")

// LocalObjectStorage writes files below a root directory. Download URLs are
// plain paths under baseURL, served by the /uploads static route.
type LocalObjectStorage struct {
	root    string
	baseURL string
}

// NewLocalObjectStorage creates root if needed.
func NewLocalObjectStorage(root, baseURL string) (*LocalObjectStorage, error) {
	if root == "" {
		return nil, errors.New("storage root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalObjectStorage{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the directory files are written to
func (s *LocalObjectStorage) Root() string {
	return s.root
}

func (s *LocalObjectStorage) pathFor(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	clean := path.Clean("/" + key)[1:]
	if clean == "" || clean != strings.TrimPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// Upload writes data to root/key, creating intermediate directories.
func (s *LocalObjectStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	p, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// GenerateDownloadURL returns baseURL/key. Local URLs do not expire; the
// returned time is only informative.
func (s *LocalObjectStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if _, err := s.pathFor(key); err != nil {
		return "", time.Time{}, err
	}
	return s.baseURL + "/" + strings.TrimPrefix(key, "/"), time.Now().Add(expiresIn), nil
}

// DeleteObject removes the file. A missing file is not an error.
func (s *LocalObjectStorage) DeleteObject(_ context.Context, key string) error {
	p, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectExists reports whether a regular file exists for key.
func (s *LocalObjectStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	p, err := s.pathFor(key)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

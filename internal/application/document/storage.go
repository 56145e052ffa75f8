package document

import (
	"context"
	"time"
)

// ObjectStorage stores uploaded files. Keys are slash-separated relative
// paths such as "uploads/2026/03/<uuid>.pdf".
type ObjectStorage interface {
	// Upload writes data under key, replacing any existing object
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// GenerateDownloadURL returns a URL the client can fetch the object from
	// and the time it stops being valid
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes the object; a missing object is not an error
	DeleteObject(ctx context.Context, key string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, key string) (bool, error)
}

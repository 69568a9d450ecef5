// Package storage provides object storage for generated notice artifacts.
package storage

import (
	"context"
	"io"
	"time"
)

// ArtifactStorage mirrors generated documents to durable object storage.
// Generation never depends on it succeeding; archival is best effort.
type ArtifactStorage interface {
	// Upload stores the content under key with the given content type
	Upload(ctx context.Context, key string, content io.Reader, contentType string) error
	// DownloadURL returns a time-limited URL for retrieving an archived artifact
	DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

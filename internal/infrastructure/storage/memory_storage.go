package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// Ensure MemoryArtifactStorage implements ArtifactStorage
var _ ArtifactStorage = (*MemoryArtifactStorage)(nil)

// MemoryArtifactStorage keeps artifacts in memory. Intended for tests and
// for running without an object storage backend.
type MemoryArtifactStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryArtifactStorage creates an empty in-memory artifact store
func NewMemoryArtifactStorage() *MemoryArtifactStorage {
	return &MemoryArtifactStorage{objects: make(map[string][]byte)}
}

// Upload stores the content under key
func (m *MemoryArtifactStorage) Upload(ctx context.Context, key string, content io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("storage key is required")
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

// DownloadURL returns a pseudo URL for the stored object
func (m *MemoryArtifactStorage) DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.objects[key]; !ok {
		return "", time.Time{}, fmt.Errorf("object not found: %s", key)
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return "memory://" + key, time.Now().Add(expiresIn), nil
}

// Get returns a stored object's content
func (m *MemoryArtifactStorage) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, ok
}

// Len returns the number of stored objects
func (m *MemoryArtifactStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

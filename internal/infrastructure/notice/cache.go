package notice

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	domain "github.com/claims/backend/internal/domain/notice"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// renderCacheNamespace scopes render fingerprints so they never collide with
// other SHA1-derived identifiers in the system.
var renderCacheNamespace = uuid.MustParse("6f1c9b1e-3c54-4c83-9a37-0d6e2b3f8a11")

// CacheEntry describes a cached render artifact
type CacheEntry struct {
	Fingerprint string
	Path        string
	Format      domain.TemplateFormat
	CreatedAt   time.Time
}

// RenderCache stores rendered notice artifacts keyed by a fingerprint of the
// claim and the exact template file that produced them. Entries expire after
// a TTL; expired entries are removed lazily on lookup and eagerly by Sweep.
// Hits are copied out, never handed to callers in place, so a later eviction
// or overwrite cannot disturb a delivered document.
type RenderCache struct {
	dir    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRenderCache creates a render cache rooted at dir with the given TTL
func NewRenderCache(dir string, ttl time.Duration, logger *zap.Logger) *RenderCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderCache{dir: dir, ttl: ttl, logger: logger}
}

// Fingerprint derives the stable cache key for rendering one claim with one
// template. The template's path and modification time are part of the key,
// so promoting or replacing a template invalidates its cached artifacts.
func (c *RenderCache) Fingerprint(entityID string, tpl *domain.Template) string {
	seed := fmt.Sprintf("noi:%s:%s:%d", entityID, tpl.Path, tpl.ModifiedAt.UnixMilli())
	return uuid.NewSHA1(renderCacheNamespace, []byte(seed)).String()
}

func (c *RenderCache) entryPath(fingerprint string, format domain.TemplateFormat) string {
	return filepath.Join(c.dir, fingerprint+"."+format.Ext())
}

// Lookup returns the live cache entry for a fingerprint, if any. An expired
// entry is deleted and reported as a miss.
func (c *RenderCache) Lookup(fingerprint string, format domain.TemplateFormat) (*CacheEntry, bool) {
	path := c.entryPath(fingerprint, format)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	if time.Since(info.ModTime()) > c.ttl {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("failed to evict expired cache entry",
				zap.String("path", path), zap.Error(err))
		}
		c.logger.Debug("cache entry expired", zap.String("fingerprint", fingerprint))
		return nil, false
	}

	return &CacheEntry{
		Fingerprint: fingerprint,
		Path:        path,
		Format:      format,
		CreatedAt:   info.ModTime(),
	}, true
}

// Store copies a rendered artifact into the cache under its fingerprint,
// replacing any previous entry.
func (c *RenderCache) Store(fingerprint string, format domain.TemplateFormat, srcPath string) error {
	dst := c.entryPath(fingerprint, format)
	if err := copyFileAtomic(srcPath, dst); err != nil {
		return NewRenderError(ErrCodeCacheFailed, "failed to cache rendered document", err)
	}
	c.logger.Debug("cached rendered document",
		zap.String("fingerprint", fingerprint),
		zap.String("path", dst))
	return nil
}

// Materialize copies a cache entry out to destPath for delivery
func (c *RenderCache) Materialize(entry *CacheEntry, destPath string) error {
	if err := copyFileAtomic(entry.Path, destPath); err != nil {
		return NewRenderError(ErrCodeCacheFailed, "failed to materialize cached document", err)
	}
	return nil
}

// Sweep removes every expired entry and returns the number removed
func (c *RenderCache) Sweep() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, NewRenderError(ErrCodeCacheFailed, "failed to read cache directory", err)
	}

	removed := 0
	cutoff := time.Now().Add(-c.ttl)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".tmp-") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(c.dir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("failed to evict expired cache entry",
				zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		c.logger.Info("swept expired cache entries", zap.Int("removed", removed))
	}
	return removed, nil
}

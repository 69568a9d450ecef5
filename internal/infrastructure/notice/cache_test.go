package notice

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	domain "github.com/claims/backend/internal/domain/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplate(path string, modified time.Time) *domain.Template {
	return &domain.Template{
		Path:       path,
		Format:     domain.FormatWordMerge,
		Version:    "v1",
		IsCurrent:  true,
		ModifiedAt: modified,
	}
}

func TestRenderCacheFingerprintStability(t *testing.T) {
	cache := NewRenderCache(t.TempDir(), 24*time.Hour, nil)
	mod := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tpl := testTemplate("/templates/word-merge/current.docx", mod)

	fp1 := cache.Fingerprint("claim-42", tpl)
	fp2 := cache.Fingerprint("claim-42", tpl)
	assert.Equal(t, fp1, fp2)

	// A different claim, template path, or template revision each changes
	// the fingerprint.
	assert.NotEqual(t, fp1, cache.Fingerprint("claim-43", tpl))
	assert.NotEqual(t, fp1, cache.Fingerprint("claim-42",
		testTemplate("/templates/word-merge/other.docx", mod)))
	assert.NotEqual(t, fp1, cache.Fingerprint("claim-42",
		testTemplate("/templates/word-merge/current.docx", mod.Add(time.Millisecond))))
}

func TestRenderCacheStoreAndLookup(t *testing.T) {
	dir := t.TempDir()
	cache := NewRenderCache(dir, 24*time.Hour, nil)

	src := filepath.Join(t.TempDir(), "rendered.docx")
	require.NoError(t, os.WriteFile(src, []byte("artifact"), 0o644))

	fp := "0b27d431-9c6f-5a57-8df1-111111111111"
	require.NoError(t, cache.Store(fp, domain.FormatWordMerge, src))

	entry, ok := cache.Lookup(fp, domain.FormatWordMerge)
	require.True(t, ok)
	assert.Equal(t, fp, entry.Fingerprint)
	assert.Equal(t, filepath.Join(dir, fp+".docx"), entry.Path)

	_, ok = cache.Lookup("unknown-fingerprint", domain.FormatWordMerge)
	assert.False(t, ok)
}

func TestRenderCacheExpiryIsLazy(t *testing.T) {
	dir := t.TempDir()
	cache := NewRenderCache(dir, 24*time.Hour, nil)

	src := filepath.Join(t.TempDir(), "rendered.docx")
	require.NoError(t, os.WriteFile(src, []byte("artifact"), 0o644))
	fp := "0b27d431-9c6f-5a57-8df1-222222222222"
	require.NoError(t, cache.Store(fp, domain.FormatWordMerge, src))

	// Age the entry past the TTL.
	stale := time.Now().Add(-25 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, fp+".docx"), stale, stale))

	_, ok := cache.Lookup(fp, domain.FormatWordMerge)
	assert.False(t, ok)
	assert.NoFileExists(t, filepath.Join(dir, fp+".docx"), "expired entry is deleted on lookup")
}

func TestRenderCacheMaterializeCopies(t *testing.T) {
	dir := t.TempDir()
	cache := NewRenderCache(dir, 24*time.Hour, nil)

	src := filepath.Join(t.TempDir(), "rendered.docx")
	require.NoError(t, os.WriteFile(src, []byte("original"), 0o644))
	fp := "0b27d431-9c6f-5a57-8df1-333333333333"
	require.NoError(t, cache.Store(fp, domain.FormatWordMerge, src))

	entry, ok := cache.Lookup(fp, domain.FormatWordMerge)
	require.True(t, ok)

	dest := filepath.Join(t.TempDir(), "delivered.docx")
	require.NoError(t, cache.Materialize(entry, dest))

	// Evicting the cache entry must not disturb the delivered copy.
	require.NoError(t, os.Remove(entry.Path))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestRenderCacheStoreOverwrites(t *testing.T) {
	dir := t.TempDir()
	cache := NewRenderCache(dir, 24*time.Hour, nil)
	srcDir := t.TempDir()

	first := filepath.Join(srcDir, "first.docx")
	require.NoError(t, os.WriteFile(first, []byte("first"), 0o644))
	second := filepath.Join(srcDir, "second.docx")
	require.NoError(t, os.WriteFile(second, []byte("second"), 0o644))

	fp := "0b27d431-9c6f-5a57-8df1-444444444444"
	require.NoError(t, cache.Store(fp, domain.FormatWordMerge, first))
	require.NoError(t, cache.Store(fp, domain.FormatWordMerge, second))

	entry, ok := cache.Lookup(fp, domain.FormatWordMerge)
	require.True(t, ok)
	data, err := os.ReadFile(entry.Path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestRenderCacheSweep(t *testing.T) {
	dir := t.TempDir()
	cache := NewRenderCache(dir, 24*time.Hour, nil)
	srcDir := t.TempDir()

	src := filepath.Join(srcDir, "rendered.docx")
	require.NoError(t, os.WriteFile(src, []byte("artifact"), 0o644))

	fresh := "0b27d431-9c6f-5a57-8df1-555555555555"
	staleFp := "0b27d431-9c6f-5a57-8df1-666666666666"
	require.NoError(t, cache.Store(fresh, domain.FormatWordMerge, src))
	require.NoError(t, cache.Store(staleFp, domain.FormatWordMerge, src))

	stale := time.Now().Add(-25 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, staleFp+".docx"), stale, stale))

	removed, err := cache.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, filepath.Join(dir, staleFp+".docx"))
	assert.FileExists(t, filepath.Join(dir, fresh+".docx"))
}

func TestRenderCacheSweepMissingDir(t *testing.T) {
	cache := NewRenderCache(filepath.Join(t.TempDir(), "never-created"), time.Hour, nil)
	removed, err := cache.Sweep()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

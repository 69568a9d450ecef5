package notice

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/claims/backend/internal/domain/notice"
	"github.com/claims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TemplateRegistry manages the current template and its versioned history
// for each format on the filesystem:
//
//	{base}/{format}/current.{ext}        the active template
//	{base}/{format}/current.version      version label of the active template
//	{base}/{format}/versions/            archived templates, {version}-{ts}.{ext}
//
// Promotions go through the validator and never leave the registry without a
// current template: the previous current is archived before being replaced.
type TemplateRegistry struct {
	baseDir   string
	validator *TemplateValidator
	logger    *zap.Logger
	mu        sync.Mutex
}

const (
	currentVersionFile = "current.version"
	versionsDirName    = "versions"
	archiveTimeLayout  = "20060102T150405"
	fallbackVersion    = "v0"
)

// NewTemplateRegistry creates a template registry rooted at baseDir
func NewTemplateRegistry(baseDir string, validator *TemplateValidator, logger *zap.Logger) *TemplateRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateRegistry{
		baseDir:   baseDir,
		validator: validator,
		logger:    logger,
	}
}

// Validator exposes the registry's template validator
func (r *TemplateRegistry) Validator() *TemplateValidator {
	return r.validator
}

func (r *TemplateRegistry) formatDir(format domain.TemplateFormat) string {
	return filepath.Join(r.baseDir, format.String())
}

func (r *TemplateRegistry) currentPath(format domain.TemplateFormat) string {
	return filepath.Join(r.formatDir(format), "current."+format.Ext())
}

func (r *TemplateRegistry) versionsDir(format domain.TemplateFormat) string {
	return filepath.Join(r.formatDir(format), versionsDirName)
}

// ResolveCurrent returns the active template for a format. If the current
// pointer is missing but archived versions exist, the newest archive is
// reinstated as current. With no template at all the caller gets NOT_FOUND.
func (r *TemplateRegistry) ResolveCurrent(format domain.TemplateFormat) (*domain.Template, error) {
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown template format: "+format.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.currentPath(format)
	if info, err := os.Stat(current); err == nil {
		return &domain.Template{
			Path:       current,
			Format:     format,
			Version:    r.readVersionLabel(format),
			IsCurrent:  true,
			ModifiedAt: info.ModTime(),
		}, nil
	}

	archived, err := r.listArchived(format)
	if err != nil {
		return nil, err
	}
	if len(archived) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("no %s template installed; install a template first", format))
	}

	// Reinstate the newest archived version as current.
	newest := archived[0]
	if err := copyFileAtomic(newest.Path, current); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to reinstate archived template", err)
	}
	if err := r.writeVersionLabel(format, newest.Version); err != nil {
		r.logger.Warn("failed to record template version",
			zap.String("format", format.String()),
			zap.String("version", newest.Version),
			zap.Error(err))
	}
	r.logger.Info("reinstated archived template as current",
		zap.String("format", format.String()),
		zap.String("version", newest.Version),
		zap.String("source", newest.Path))

	info, err := os.Stat(current)
	if err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to stat reinstated template", err)
	}
	return &domain.Template{
		Path:       current,
		Format:     format,
		Version:    newest.Version,
		IsCurrent:  true,
		ModifiedAt: info.ModTime(),
	}, nil
}

// Promote validates a candidate template and, when it passes, installs it as
// the current template for its format. The previous current template is
// archived under versions/ first. An invalid candidate changes nothing; the
// validation result is returned either way.
func (r *TemplateRegistry) Promote(candidatePath, version string, format domain.TemplateFormat) (*domain.ValidationResult, error) {
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown template format: "+format.String())
	}
	if strings.TrimSpace(version) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "template version label is required")
	}

	result := r.validator.Validate(candidatePath, format)
	if !result.Success {
		r.logger.Warn("rejected template promotion",
			zap.String("candidate", candidatePath),
			zap.String("format", format.String()),
			zap.Strings("missing_fields", result.MissingFields),
			zap.String("reason", result.Reason))
		return result, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Stage the candidate next to its destination so the final install is a
	// rename on the same filesystem.
	current := r.currentPath(format)
	staged := current + ".staged"
	if err := copyFileAtomic(candidatePath, staged); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to stage candidate template", err)
	}

	if _, err := os.Stat(current); err == nil {
		oldVersion := r.readVersionLabel(format)
		archive := filepath.Join(r.versionsDir(format),
			fmt.Sprintf("%s-%s.%s", oldVersion, time.Now().UTC().Format(archiveTimeLayout), format.Ext()))
		if err := copyFileAtomic(current, archive); err != nil {
			os.Remove(staged)
			return nil, NewRenderError(ErrCodeStorageFailed, "failed to archive current template", err)
		}
		r.logger.Info("archived current template",
			zap.String("format", format.String()),
			zap.String("version", oldVersion),
			zap.String("archive", archive))
	}

	if err := os.Rename(staged, current); err != nil {
		os.Remove(staged)
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to install template", err)
	}
	// The template is installed at this point; a label that cannot be
	// written only degrades the reported version until the next promotion.
	if err := r.writeVersionLabel(format, version); err != nil {
		r.logger.Warn("failed to record template version",
			zap.String("format", format.String()),
			zap.String("version", version),
			zap.Error(err))
	}

	r.logger.Info("promoted template",
		zap.String("format", format.String()),
		zap.String("version", version),
		zap.String("candidate", candidatePath))
	return result, nil
}

// List returns the known templates for a format, current first, then
// archived versions newest first.
func (r *TemplateRegistry) List(format domain.TemplateFormat) ([]domain.Template, error) {
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown template format: "+format.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var templates []domain.Template
	current := r.currentPath(format)
	if info, err := os.Stat(current); err == nil {
		templates = append(templates, domain.Template{
			Path:       current,
			Format:     format,
			Version:    r.readVersionLabel(format),
			IsCurrent:  true,
			ModifiedAt: info.ModTime(),
		})
	}

	archived, err := r.listArchived(format)
	if err != nil {
		return nil, err
	}
	return append(templates, archived...), nil
}

// listArchived returns archived templates newest first. Caller holds r.mu.
func (r *TemplateRegistry) listArchived(format domain.TemplateFormat) ([]domain.Template, error) {
	dir := r.versionsDir(format)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to read template history", err)
	}

	ext := "." + format.Ext()
	var templates []domain.Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		templates = append(templates, domain.Template{
			Path:       filepath.Join(dir, entry.Name()),
			Format:     format,
			Version:    archiveVersionLabel(entry.Name(), ext),
			IsCurrent:  false,
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].ModifiedAt.After(templates[j].ModifiedAt)
	})
	return templates, nil
}

// archiveVersionLabel recovers the version label from an archive file name
// of the form {version}-{timestamp}{ext}
func archiveVersionLabel(name, ext string) string {
	base := strings.TrimSuffix(name, ext)
	if i := strings.LastIndex(base, "-"); i > 0 {
		return base[:i]
	}
	return base
}

func (r *TemplateRegistry) versionFilePath(format domain.TemplateFormat) string {
	return filepath.Join(r.formatDir(format), currentVersionFile)
}

func (r *TemplateRegistry) readVersionLabel(format domain.TemplateFormat) string {
	data, err := os.ReadFile(r.versionFilePath(format))
	if err != nil {
		return fallbackVersion
	}
	label := strings.TrimSpace(string(data))
	if label == "" {
		return fallbackVersion
	}
	return label
}

func (r *TemplateRegistry) writeVersionLabel(format domain.TemplateFormat, version string) error {
	if err := writeFileAtomic(r.versionFilePath(format), []byte(version+"\n"), 0o644); err != nil {
		return NewRenderError(ErrCodeStorageFailed, "failed to record template version", err)
	}
	return nil
}

package notice

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	domain "github.com/claims/backend/internal/domain/notice"
	"github.com/claims/backend/internal/domain/shared"
	infra "github.com/claims/backend/internal/infrastructure/notice"
	"github.com/claims/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Paths groups the working directories the notice service writes to
type Paths struct {
	OutputDir  string
	PreviewDir string
	UploadsDir string
}

// NoticeService orchestrates notice generation: template resolution, render
// caching, field mapping and format-specific merging. Concurrent generation
// of the same claim may render twice; both renders produce identical
// artifacts, so the last write simply wins.
type NoticeService struct {
	registry *infra.TemplateRegistry
	cache    *infra.RenderCache
	mergers  map[domain.TemplateFormat]infra.DocumentMerger
	archive  storage.ArtifactStorage
	paths    Paths
	logger   *zap.Logger
}

// NewNoticeService creates a new NoticeService. archive may be nil, in which
// case generated documents are not mirrored to object storage.
func NewNoticeService(
	registry *infra.TemplateRegistry,
	cache *infra.RenderCache,
	mergers map[domain.TemplateFormat]infra.DocumentMerger,
	archive storage.ArtifactStorage,
	paths Paths,
	logger *zap.Logger,
) *NoticeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeService{
		registry: registry,
		cache:    cache,
		mergers:  mergers,
		archive:  archive,
		paths:    paths,
		logger:   logger,
	}
}

// =============================================================================
// Document Operations
// =============================================================================

// Generate produces the notice document for a claim, serving it from the
// render cache when the claim/template pair was rendered within the TTL.
func (s *NoticeService) Generate(ctx context.Context, req GenerateNoticeRequest) (*DocumentResponse, error) {
	format := domain.TemplateFormat(req.Format)
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid template format")
	}

	claim, err := claimFromDTO(req.Claim)
	if err != nil {
		return nil, err
	}

	template, err := s.registry.ResolveCurrent(format)
	if err != nil {
		return nil, err
	}

	// Each call gets its own output artifact, cache hit or miss
	fileName := fmt.Sprintf("NOI-%s-%s.%s",
		sanitizeFileName(claim.ClaimNumber), uuid.NewString()[:8], format.Ext())
	outPath := filepath.Join(s.paths.OutputDir, fileName)

	fingerprint := s.cache.Fingerprint(claim.ClaimNumber, template)
	if entry, ok := s.cache.Lookup(fingerprint, format); ok {
		if err := s.cache.Materialize(entry, outPath); err == nil {
			s.logger.Info("served notice from cache",
				zap.String("claim_number", claim.ClaimNumber),
				zap.String("fingerprint", fingerprint))
			return documentResponse(&domain.GeneratedDocument{
				Path:      outPath,
				FileName:  fileName,
				Format:    format,
				FromCache: true,
			}), nil
		} else {
			// A corrupt or vanished entry degrades to a cache miss.
			s.logger.Warn("cache entry unusable, re-rendering",
				zap.String("fingerprint", fingerprint), zap.Error(err))
		}
	}

	merger, ok := s.mergers[format]
	if !ok {
		return nil, shared.NewDomainError("INVALID_STATE", "No renderer registered for format "+format.String())
	}

	fields := domain.ToFieldDictionary(*claim)
	if err := merger.Merge(ctx, template.Path, outPath, fields); err != nil {
		return nil, err
	}

	if err := s.cache.Store(fingerprint, format, outPath); err != nil {
		s.logger.Warn("failed to cache rendered notice",
			zap.String("fingerprint", fingerprint), zap.Error(err))
	}
	archiveURL := s.archiveArtifact(ctx, fingerprint, fileName, outPath, format)

	s.logger.Info("generated notice",
		zap.String("claim_number", claim.ClaimNumber),
		zap.String("format", format.String()),
		zap.String("template_version", template.Version))

	resp := documentResponse(&domain.GeneratedDocument{
		Path:     outPath,
		FileName: fileName,
		Format:   format,
		Fields:   fields,
	})
	resp.ArchiveURL = archiveURL
	return resp, nil
}

// Preview renders a sample notice with fixture claim data, bypassing the
// render cache. Overrides replace individual merge-field values. When
// TemplatePath names an uploaded candidate it is rendered directly without
// touching the registry, so candidates can be proofed before promotion.
func (s *NoticeService) Preview(ctx context.Context, req PreviewNoticeRequest) (*DocumentResponse, error) {
	format := domain.TemplateFormat(req.Format)
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid template format")
	}

	templatePath := req.TemplatePath
	version := ""
	if templatePath == "" {
		template, err := s.registry.ResolveCurrent(format)
		if err != nil {
			return nil, err
		}
		templatePath = template.Path
		version = template.Version
	} else if !s.isUploadedPath(templatePath) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Candidate path must be an uploaded template")
	}

	merger, ok := s.mergers[format]
	if !ok {
		return nil, shared.NewDomainError("INVALID_STATE", "No renderer registered for format "+format.String())
	}

	fields := domain.SampleFieldDictionary(req.Overrides)
	fileName := fmt.Sprintf("preview-%s-%s.%s", format, uuid.NewString()[:8], format.Ext())
	outPath := filepath.Join(s.paths.PreviewDir, fileName)

	if err := merger.Merge(ctx, templatePath, outPath, fields); err != nil {
		return nil, err
	}

	s.logger.Info("rendered notice preview",
		zap.String("format", format.String()),
		zap.String("template_version", version))

	return documentResponse(&domain.GeneratedDocument{
		Path:     outPath,
		FileName: fileName,
		Format:   format,
		Fields:   fields,
	}), nil
}

// =============================================================================
// Template Operations
// =============================================================================

// UploadTemplate stores a candidate template in the uploads scratch area and
// validates it. The candidate does not become current until promoted.
func (s *NoticeService) UploadTemplate(ctx context.Context, formatStr, originalName string, content io.Reader) (*UploadTemplateResponse, error) {
	format := domain.TemplateFormat(formatStr)
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid template format")
	}
	if !strings.EqualFold(filepath.Ext(originalName), "."+format.Ext()) {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("A %s template must be a .%s file", format, format.Ext()))
	}

	path := filepath.Join(s.paths.UploadsDir, fmt.Sprintf("%s-%s.%s", format, uuid.NewString(), format.Ext()))
	if err := s.writeUpload(path, content); err != nil {
		return nil, err
	}

	result := s.registry.Validator().Validate(path, format)
	s.logger.Info("stored candidate template",
		zap.String("path", path),
		zap.String("format", format.String()),
		zap.Bool("valid", result.Success))

	return &UploadTemplateResponse{
		Path:       path,
		Format:     format.String(),
		Validation: validationDTO(result),
	}, nil
}

// PromoteTemplate promotes an uploaded candidate to current for its format
func (s *NoticeService) PromoteTemplate(ctx context.Context, req PromoteTemplateRequest) (*PromoteTemplateResponse, error) {
	format := domain.TemplateFormat(req.Format)
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid template format")
	}
	if !s.isUploadedPath(req.Path) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Candidate path must be an uploaded template")
	}

	result, err := s.registry.Promote(req.Path, req.Version, format)
	if err != nil {
		return nil, err
	}

	resp := &PromoteTemplateResponse{
		Promoted:   result.Success,
		Validation: validationDTO(result),
	}
	if result.Success {
		resp.Version = req.Version
	}
	return resp, nil
}

// ListTemplates returns the current and archived templates for a format
func (s *NoticeService) ListTemplates(ctx context.Context, formatStr string) ([]TemplateResponse, error) {
	format := domain.TemplateFormat(formatStr)
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid template format")
	}

	templates, err := s.registry.List(format)
	if err != nil {
		return nil, err
	}

	responses := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, TemplateResponse{
			Path:       t.Path,
			Format:     t.Format.String(),
			Version:    t.Version,
			IsCurrent:  t.IsCurrent,
			ModifiedAt: t.ModifiedAt,
		})
	}
	return responses, nil
}

// DocumentPath resolves a generated document's file name to its location in
// the output directory
func (s *NoticeService) DocumentPath(fileName string) (string, error) {
	if fileName != filepath.Base(fileName) {
		return "", shared.NewDomainError("INVALID_INPUT", "Invalid file name")
	}
	path := filepath.Join(s.paths.OutputDir, fileName)
	if _, err := os.Stat(path); err != nil {
		return "", shared.NewDomainError("NOT_FOUND", "Document not found: "+fileName)
	}
	return path, nil
}

// SweepCache removes expired render cache entries
func (s *NoticeService) SweepCache(ctx context.Context) (int, error) {
	return s.cache.Sweep()
}

// =============================================================================
// Helpers
// =============================================================================

// isUploadedPath reports whether path points inside the uploads scratch area
func (s *NoticeService) isUploadedPath(path string) bool {
	return strings.HasPrefix(filepath.Clean(path), filepath.Clean(s.paths.UploadsDir)+string(os.PathSeparator))
}

func (s *NoticeService) writeUpload(path string, content io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to store upload: %w", err)
	}
	return nil
}

// archiveLinkTTL bounds how long an archived notice link stays retrievable
const archiveLinkTTL = 15 * time.Minute

// archiveArtifact mirrors a generated document to object storage, best
// effort, and returns a time-limited retrieval URL for the archived copy.
// Any failure yields an empty URL and never fails the render.
func (s *NoticeService) archiveArtifact(ctx context.Context, fingerprint, fileName, path string, format domain.TemplateFormat) string {
	if s.archive == nil {
		return ""
	}
	f, err := os.Open(path)
	if err != nil {
		s.logger.Warn("failed to open artifact for archival", zap.String("path", path), zap.Error(err))
		return ""
	}
	defer f.Close()

	key := fmt.Sprintf("notices/%s/%s", fingerprint, fileName)
	if err := s.archive.Upload(ctx, key, f, contentTypeFor(format)); err != nil {
		s.logger.Warn("failed to archive artifact",
			zap.String("key", key), zap.Error(err))
		return ""
	}

	url, _, err := s.archive.DownloadURL(ctx, key, archiveLinkTTL)
	if err != nil {
		s.logger.Warn("archived artifact has no retrieval url",
			zap.String("key", key), zap.Error(err))
		return ""
	}
	s.logger.Debug("archived artifact", zap.String("key", key))
	return url
}

func contentTypeFor(format domain.TemplateFormat) string {
	switch format {
	case domain.FormatWordMerge:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case domain.FormatFillablePDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

var claimDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"01/02/2006",
}

// claimFromDTO converts the wire claim into its domain form
func claimFromDTO(dto ClaimDTO) (*domain.Claim, error) {
	claim := &domain.Claim{
		ClaimNumber:           strings.TrimSpace(dto.ClaimNumber),
		CustomerName:          dto.CustomerName,
		CustomerAddress:       dto.CustomerAddress,
		RentalAgreementNumber: dto.RentalAgreementNumber,
		DamageDescription:     dto.DamageDescription,
		AdjustorName:          dto.AdjustorName,
		AdjustorPhone:         dto.AdjustorPhone,
		Vehicle: domain.Vehicle{
			Year:  dto.Vehicle.Year,
			Make:  dto.Vehicle.Make,
			Model: dto.Vehicle.Model,
			Color: dto.Vehicle.Color,
			VIN:   dto.Vehicle.VIN,
		},
	}
	if claim.ClaimNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Claim number is required")
	}

	if raw := strings.TrimSpace(dto.DamagesTotal); raw != "" {
		total, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", ""))
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid damages total: "+dto.DamagesTotal)
		}
		claim.DamagesTotal = &total
	}

	if raw := strings.TrimSpace(dto.AccidentDate); raw != "" {
		var parsed time.Time
		var err error
		for _, layout := range claimDateLayouts {
			if parsed, err = time.Parse(layout, raw); err == nil {
				break
			}
		}
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid accident date: "+dto.AccidentDate)
		}
		claim.AccidentDate = &parsed
	}

	return claim, nil
}

// sanitizeFileName keeps a claim number safe for use in a file name
func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '-'
		}
	}, name)
}

// documentResponse converts a rendered document into its wire form
func documentResponse(doc *domain.GeneratedDocument) *DocumentResponse {
	resp := &DocumentResponse{
		FileName:  doc.FileName,
		Path:      doc.Path,
		Format:    doc.Format.String(),
		FromCache: doc.FromCache,
	}
	if doc.Fields != nil {
		resp.Fields = doc.Fields.Clone()
	}
	return resp
}

func validationDTO(result *domain.ValidationResult) ValidationResultDTO {
	return ValidationResultDTO{
		Success:       result.Success,
		MissingFields: result.MissingFields,
		PresentFields: result.PresentFields,
		Reason:        result.Reason,
	}
}

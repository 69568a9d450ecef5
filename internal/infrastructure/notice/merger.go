package notice

import (
	"context"

	domain "github.com/claims/backend/internal/domain/notice"
	"go.uber.org/zap"
)

// DocumentMerger renders a template of one format into an output artifact.
// Both template formats are variants of the same operation: substitute the
// field dictionary into the template and persist the result.
type DocumentMerger interface {
	// Format identifies the template format this merger handles
	Format() domain.TemplateFormat
	// Merge renders templatePath with the field dictionary into outPath
	Merge(ctx context.Context, templatePath, outPath string, fields domain.FieldDictionary) error
}

// NewMergers builds the merger set for all supported formats, keyed by format
func NewMergers(logger *zap.Logger) map[domain.TemplateFormat]DocumentMerger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return map[domain.TemplateFormat]DocumentMerger{
		domain.FormatWordMerge:   NewWordMergeEngine(logger),
		domain.FormatFillablePDF: NewPDFFormEngine(logger),
	}
}

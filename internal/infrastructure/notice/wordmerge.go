package notice

import (
	"context"

	domain "github.com/claims/backend/internal/domain/notice"
	"go.uber.org/zap"
)

// WordMergeEngine renders word-merge templates by substituting {field}
// tokens in the document body. Unknown tokens pass through verbatim so a
// template may carry literal braces outside the merge contract.
type WordMergeEngine struct {
	logger *zap.Logger
}

// NewWordMergeEngine creates a word-merge engine
func NewWordMergeEngine(logger *zap.Logger) *WordMergeEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WordMergeEngine{logger: logger}
}

// Format identifies the template format this merger handles
func (e *WordMergeEngine) Format() domain.TemplateFormat {
	return domain.FormatWordMerge
}

// Merge renders the template with the field dictionary into outPath
func (e *WordMergeEngine) Merge(ctx context.Context, templatePath, outPath string, fields domain.FieldDictionary) error {
	select {
	case <-ctx.Done():
		return NewRenderError(ErrCodeMergeFailed, "merge cancelled", ctx.Err())
	default:
	}

	if err := mergeDocx(templatePath, outPath, fields); err != nil {
		return NewRenderError(ErrCodeMergeFailed, "word merge failed for "+templatePath, err)
	}

	e.logger.Debug("word-merge document rendered",
		zap.String("template", templatePath),
		zap.String("output", outPath))
	return nil
}

var _ DocumentMerger = (*WordMergeEngine)(nil)

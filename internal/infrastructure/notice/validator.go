package notice

import (
	domain "github.com/claims/backend/internal/domain/notice"
	"go.uber.org/zap"
)

// TemplateValidator checks that a candidate template carries every required
// merge field for its format before it may become the current template.
type TemplateValidator struct {
	pdf    *PDFFormEngine
	logger *zap.Logger
}

// NewTemplateValidator creates a template validator
func NewTemplateValidator(logger *zap.Logger) *TemplateValidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateValidator{
		pdf:    NewPDFFormEngine(logger),
		logger: logger,
	}
}

// Validate inspects the template at path against the required merge fields.
// A file that cannot be read as its format yields a structural failure with
// a reason and no per-field breakdown.
func (v *TemplateValidator) Validate(path string, format domain.TemplateFormat) *domain.ValidationResult {
	switch format {
	case domain.FormatWordMerge:
		return v.validateWordMerge(path)
	case domain.FormatFillablePDF:
		return v.validateFillablePDF(path)
	default:
		return domain.NewStructuralFailure("unsupported template format: " + format.String())
	}
}

func (v *TemplateValidator) validateWordMerge(path string) *domain.ValidationResult {
	doc, err := readDocumentXML(path)
	if err != nil {
		v.logger.Warn("template failed structural validation",
			zap.String("path", path), zap.Error(err))
		return domain.NewStructuralFailure(err.Error())
	}
	if _, err := extractText(doc); err != nil {
		v.logger.Warn("template failed structural validation",
			zap.String("path", path), zap.Error(err))
		return domain.NewStructuralFailure(err.Error())
	}

	// Tokens are matched against the raw document part, the same
	// representation substitution rewrites. A token fragmented across runs
	// would survive merging verbatim, so it must not count as present.
	raw := string(doc)

	result := &domain.ValidationResult{Success: true}
	for _, field := range domain.RequiredMergeFields() {
		if containsFieldToken(raw, field) {
			result.PresentFields = append(result.PresentFields, field)
		} else {
			result.MissingFields = append(result.MissingFields, field)
			result.Success = false
		}
	}
	return result
}

func (v *TemplateValidator) validateFillablePDF(path string) *domain.ValidationResult {
	present, err := v.pdf.formFieldNames(path)
	if err != nil {
		v.logger.Warn("template failed structural validation",
			zap.String("path", path), zap.Error(err))
		return domain.NewStructuralFailure(err.Error())
	}

	result := &domain.ValidationResult{Success: true}
	for _, field := range domain.RequiredMergeFields() {
		if _, ok := present[field]; ok {
			result.PresentFields = append(result.PresentFields, field)
		} else {
			result.MissingFields = append(result.MissingFields, field)
			result.Success = false
		}
	}
	return result
}

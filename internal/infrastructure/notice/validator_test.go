package notice

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	domain "github.com/claims/backend/internal/domain/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateValidatorCompleteTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidate.docx")
	writeTestDocx(t, path, allFieldsBody(t))

	v := NewTemplateValidator(nil)
	result := v.Validate(path, domain.FormatWordMerge)

	assert.True(t, result.Success)
	assert.Empty(t, result.MissingFields)
	assert.Len(t, result.PresentFields, len(domain.RequiredMergeFields()))
	assert.False(t, result.StructuralFailure())
}

func TestTemplateValidatorMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidate.docx")
	writeTestDocx(t, path, "Dear {customerName}, regarding claim {claimNumber}.")

	v := NewTemplateValidator(nil)
	result := v.Validate(path, domain.FormatWordMerge)

	assert.False(t, result.Success)
	assert.Contains(t, result.PresentFields, domain.FieldCustomerName)
	assert.Contains(t, result.PresentFields, domain.FieldClaimNumber)
	assert.Contains(t, result.MissingFields, domain.FieldClaimAmount)
	assert.Contains(t, result.MissingFields, domain.FieldCompanyLogo)
	assert.Len(t, result.MissingFields, len(domain.RequiredMergeFields())-2)
	assert.False(t, result.StructuralFailure())
}

func TestTemplateValidatorSpacedTokens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidate.docx")

	// A single surrounding space inside the braces is tolerated.
	body := ""
	for _, field := range domain.RequiredMergeFields() {
		body += "{ " + field + " } "
	}
	writeTestDocx(t, path, body)

	v := NewTemplateValidator(nil)
	result := v.Validate(path, domain.FormatWordMerge)

	assert.True(t, result.Success)
	assert.Empty(t, result.MissingFields)
}

func TestTemplateValidatorRejectsTokenSplitAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidate.docx")

	// Word processors routinely fragment literal text across runs. A token
	// broken by a run boundary never matches during substitution, so it must
	// be reported missing rather than admitted.
	body := strings.Replace(allFieldsBody(t),
		"{claimNumber}", "{claim</w:t></w:r><w:r><w:t>Number}", 1)
	writeTestDocx(t, path, body)

	v := NewTemplateValidator(nil)
	result := v.Validate(path, domain.FormatWordMerge)

	assert.False(t, result.Success)
	assert.Contains(t, result.MissingFields, "claimNumber")
	assert.Contains(t, result.PresentFields, "customerName")
	assert.False(t, result.StructuralFailure())
}

func TestTemplateValidatorFillablePDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidate.pdf")
	writeTestPDF(t, path, domain.RequiredMergeFields()...)

	v := NewTemplateValidator(nil)
	result := v.Validate(path, domain.FormatFillablePDF)

	assert.True(t, result.Success)
	assert.Empty(t, result.MissingFields)
	assert.Len(t, result.PresentFields, len(domain.RequiredMergeFields()))
}

func TestTemplateValidatorFillablePDFMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidate.pdf")
	writeTestPDF(t, path, "claimNumber", "customerName")

	v := NewTemplateValidator(nil)
	result := v.Validate(path, domain.FormatFillablePDF)

	assert.False(t, result.Success)
	assert.Contains(t, result.MissingFields, "claimAmount")
	assert.Contains(t, result.PresentFields, "claimNumber")
}

func TestTemplateValidatorStructuralFailure(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		format domain.TemplateFormat
	}{
		{
			name: "not a zip container",
			setup: func(t *testing.T) string {
				path := filepath.Join(dir, "garbage.docx")
				require.NoError(t, os.WriteFile(path, []byte("not a docx"), 0o644))
				return path
			},
			format: domain.FormatWordMerge,
		},
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				return filepath.Join(dir, "does-not-exist.docx")
			},
			format: domain.FormatWordMerge,
		},
		{
			name: "not a pdf",
			setup: func(t *testing.T) string {
				path := filepath.Join(dir, "garbage.pdf")
				require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))
				return path
			},
			format: domain.FormatFillablePDF,
		},
	}

	v := NewTemplateValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.setup(t), tt.format)

			assert.False(t, result.Success)
			assert.True(t, result.StructuralFailure())
			assert.NotEmpty(t, result.Reason)
			assert.Empty(t, result.MissingFields)
		})
	}
}

func TestTemplateValidatorUnsupportedFormat(t *testing.T) {
	v := NewTemplateValidator(nil)
	result := v.Validate("whatever.txt", domain.TemplateFormat("spreadsheet"))

	assert.False(t, result.Success)
	assert.True(t, result.StructuralFailure())
}

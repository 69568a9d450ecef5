package notice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	domain "github.com/claims/backend/internal/domain/notice"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

// PDFFormEngine renders fillable-pdf templates: it fills the AcroForm text
// fields from the field dictionary, then locks every field so the delivered
// document is no longer editable. Dictionary entries with no matching form
// field are skipped with a warning rather than failing the render.
type PDFFormEngine struct {
	conf   *model.Configuration
	logger *zap.Logger
}

// NewPDFFormEngine creates a fillable-pdf engine
func NewPDFFormEngine(logger *zap.Logger) *PDFFormEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFFormEngine{
		conf:   model.NewDefaultConfiguration(),
		logger: logger,
	}
}

// Format identifies the template format this merger handles
func (e *PDFFormEngine) Format() domain.TemplateFormat {
	return domain.FormatFillablePDF
}

// Merge fills the template's form fields from the dictionary into outPath
func (e *PDFFormEngine) Merge(ctx context.Context, templatePath, outPath string, fields domain.FieldDictionary) error {
	select {
	case <-ctx.Done():
		return NewRenderError(ErrCodeFormFillFailed, "form fill cancelled", ctx.Err())
	default:
	}

	present, err := e.formFieldNames(templatePath)
	if err != nil {
		return NewRenderError(ErrCodeTemplateUnreadable, "failed to read form fields from "+templatePath, err)
	}

	fillable := make([]formFieldValue, 0, len(fields))
	for name, value := range fields {
		if _, ok := present[name]; !ok {
			e.logger.Warn("field has no matching form field, skipping",
				zap.String("field", name),
				zap.String("template", templatePath))
			continue
		}
		fillable = append(fillable, formFieldValue{ID: name, Value: value})
	}

	fillJSON, err := json.Marshal(formFillRequest{
		Forms: []formFillGroup{{TextField: fillable}},
	})
	if err != nil {
		return NewRenderError(ErrCodeFormFillFailed, "failed to encode form values", err)
	}

	tpl, err := os.Open(templatePath)
	if err != nil {
		return NewRenderError(ErrCodeTemplateUnreadable, "failed to open template "+templatePath, err)
	}
	defer tpl.Close()

	var filled bytes.Buffer
	if err := api.FillForm(tpl, bytes.NewReader(fillJSON), &filled, e.conf); err != nil {
		return NewRenderError(ErrCodeFormFillFailed, "form fill failed for "+templatePath, err)
	}

	var locked bytes.Buffer
	if err := api.LockFormFields(bytes.NewReader(filled.Bytes()), &locked, nil, e.conf); err != nil {
		return NewRenderError(ErrCodeFormFillFailed, "form lock failed for "+templatePath, err)
	}

	if err := writeFileAtomic(outPath, locked.Bytes(), 0o644); err != nil {
		return NewRenderError(ErrCodeStorageFailed, "failed to persist "+outPath, err)
	}

	e.logger.Debug("fillable-pdf document rendered",
		zap.String("template", templatePath),
		zap.String("output", outPath),
		zap.Int("fields_filled", len(fillable)))
	return nil
}

// formFieldNames returns the set of form field identifiers in a PDF template
func (e *PDFFormEngine) formFieldNames(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := api.ExportFormJSON(f, &buf, path, e.conf); err != nil {
		return nil, fmt.Errorf("failed to export form of %s: %w", path, err)
	}

	var export formExport
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		return nil, fmt.Errorf("malformed form export for %s: %w", path, err)
	}

	names := make(map[string]struct{})
	for _, form := range export.Forms {
		for _, group := range [][]formFieldRef{
			form.TextField, form.DateField, form.CheckBox,
			form.ComboBox, form.ListBox, form.RadioButtonGroup,
		} {
			for _, fld := range group {
				id := fld.ID
				if id == "" {
					id = fld.Name
				}
				if id != "" {
					names[id] = struct{}{}
				}
			}
		}
	}
	return names, nil
}

var _ DocumentMerger = (*PDFFormEngine)(nil)

// Wire shapes for the form export / fill JSON exchanged with the PDF engine

type formFieldRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type formExport struct {
	Forms []struct {
		TextField        []formFieldRef `json:"textfield"`
		DateField        []formFieldRef `json:"datefield"`
		CheckBox         []formFieldRef `json:"checkbox"`
		ComboBox         []formFieldRef `json:"combobox"`
		ListBox          []formFieldRef `json:"listbox"`
		RadioButtonGroup []formFieldRef `json:"radiobuttongroup"`
	} `json:"forms"`
}

type formFieldValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type formFillGroup struct {
	TextField []formFieldValue `json:"textfield"`
}

type formFillRequest struct {
	Forms []formFillGroup `json:"forms"`
}

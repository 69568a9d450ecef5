package notice

// TemplateFormat represents the kind of notice template a document is
// rendered from.
type TemplateFormat string

const (
	// FormatWordMerge is a word-processing template carrying {field} merge
	// tokens in its body text.
	FormatWordMerge TemplateFormat = "word-merge"
	// FormatFillablePDF is a PDF form whose named form fields are filled
	// and then flattened into non-editable page content.
	FormatFillablePDF TemplateFormat = "fillable-pdf"
)

// IsValid checks if the TemplateFormat is a valid value
func (f TemplateFormat) IsValid() bool {
	switch f {
	case FormatWordMerge, FormatFillablePDF:
		return true
	}
	return false
}

// String returns the string representation of TemplateFormat
func (f TemplateFormat) String() string {
	return string(f)
}

// Ext returns the file extension (without dot) for artifacts of this format
func (f TemplateFormat) Ext() string {
	switch f {
	case FormatWordMerge:
		return "docx"
	case FormatFillablePDF:
		return "pdf"
	default:
		return "bin"
	}
}

// AllTemplateFormats returns all valid TemplateFormat values
func AllTemplateFormats() []TemplateFormat {
	return []TemplateFormat{FormatWordMerge, FormatFillablePDF}
}

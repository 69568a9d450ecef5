package notice

// RenderError represents an error raised while producing a notice artifact
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for render failures
const (
	ErrCodeTemplateUnreadable = "TEMPLATE_UNREADABLE"
	ErrCodeMergeFailed        = "MERGE_FAILED"
	ErrCodeFormFillFailed     = "FORM_FILL_FAILED"
	ErrCodeStorageFailed      = "STORAGE_FAILED"
	ErrCodeCacheFailed        = "CACHE_FAILED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

package notice

import "time"

// Template describes one template file known to the registry: either the
// current template for its format or an archived historical version.
// Identity is the absolute path; ModifiedAt is part of the render cache key,
// so promoting or replacing a template invalidates cached artifacts.
type Template struct {
	Path       string         `json:"path"`
	Format     TemplateFormat `json:"format"`
	Version    string         `json:"version"`
	IsCurrent  bool           `json:"isCurrent"`
	ModifiedAt time.Time      `json:"modifiedAt"`
}

// ValidationResult reports which required merge fields a template exposes.
// A structural failure (unreadable or malformed container) is reported via
// Reason with an empty MissingFields list, to distinguish "could not check"
// from "checked and incomplete".
type ValidationResult struct {
	Success       bool     `json:"success"`
	MissingFields []string `json:"missingFields"`
	PresentFields []string `json:"presentFields"`
	Reason        string   `json:"reason,omitempty"`
}

// StructuralFailure reports true when validation could not inspect the
// template at all, as opposed to inspecting it and finding fields missing.
func (r *ValidationResult) StructuralFailure() bool {
	return !r.Success && r.Reason != "" && len(r.MissingFields) == 0
}

// NewStructuralFailure creates a failed ValidationResult for a template that
// could not be inspected.
func NewStructuralFailure(reason string) *ValidationResult {
	return &ValidationResult{Success: false, Reason: reason}
}

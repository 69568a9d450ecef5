package notice

import (
	"time"
)

// =============================================================================
// Generation DTOs
// =============================================================================

// VehicleDTO carries the vehicle details of a claim
type VehicleDTO struct {
	Year  string `json:"year" binding:"max=4"`
	Make  string `json:"make" binding:"max=50"`
	Model string `json:"model" binding:"max=50"`
	Color string `json:"color" binding:"max=30"`
	VIN   string `json:"vin" binding:"max=17"`
}

// ClaimDTO carries the claim data a notice is generated from
type ClaimDTO struct {
	ClaimNumber           string     `json:"claim_number" binding:"required,min=1,max=50"`
	CustomerName          string     `json:"customer_name" binding:"max=200"`
	CustomerAddress       string     `json:"customer_address" binding:"max=500"`
	RentalAgreementNumber string     `json:"rental_agreement_number" binding:"max=50"`
	DamageDescription     string     `json:"damage_description" binding:"max=2000"`
	DamagesTotal          string     `json:"damages_total" binding:"max=30"`
	AccidentDate          string     `json:"accident_date" binding:"max=40"`
	AdjustorName          string     `json:"adjustor_name" binding:"max=200"`
	AdjustorPhone         string     `json:"adjustor_phone" binding:"max=40"`
	Vehicle               VehicleDTO `json:"vehicle"`
}

// GenerateNoticeRequest represents a request to generate a notice document
type GenerateNoticeRequest struct {
	Format string   `json:"format" binding:"required,oneof=word-merge fillable-pdf"`
	Claim  ClaimDTO `json:"claim" binding:"required"`
}

// PreviewNoticeRequest represents a request to render a sample notice.
// TemplatePath previews an uploaded candidate before promotion; when empty
// the current template for the format is used.
type PreviewNoticeRequest struct {
	Format       string            `json:"format" binding:"required,oneof=word-merge fillable-pdf"`
	TemplatePath string            `json:"template_path"`
	Overrides    map[string]string `json:"overrides"`
}

// DocumentResponse represents a generated notice document. ArchiveURL is a
// time-limited link to the archived copy, present only when object storage
// is enabled and the archival succeeded.
type DocumentResponse struct {
	FileName   string            `json:"file_name"`
	Path       string            `json:"path"`
	Format     string            `json:"format"`
	FromCache  bool              `json:"from_cache"`
	ArchiveURL string            `json:"archive_url,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// =============================================================================
// Template DTOs
// =============================================================================

// PromoteTemplateRequest represents a request to promote an uploaded template
type PromoteTemplateRequest struct {
	Path    string `json:"path" binding:"required"`
	Version string `json:"version" binding:"required,min=1,max=50"`
	Format  string `json:"format" binding:"required,oneof=word-merge fillable-pdf"`
}

// ValidationResultDTO reports the merge-field check of a template
type ValidationResultDTO struct {
	Success       bool     `json:"success"`
	MissingFields []string `json:"missing_fields"`
	PresentFields []string `json:"present_fields"`
	Reason        string   `json:"reason,omitempty"`
}

// UploadTemplateResponse represents a stored candidate template and its
// validation outcome
type UploadTemplateResponse struct {
	Path       string              `json:"path"`
	Format     string              `json:"format"`
	Validation ValidationResultDTO `json:"validation"`
}

// PromoteTemplateResponse represents the outcome of a promotion attempt
type PromoteTemplateResponse struct {
	Promoted   bool                `json:"promoted"`
	Version    string              `json:"version,omitempty"`
	Validation ValidationResultDTO `json:"validation"`
}

// TemplateResponse represents one template known to the registry
type TemplateResponse struct {
	Path       string    `json:"path"`
	Format     string    `json:"format"`
	Version    string    `json:"version"`
	IsCurrent  bool      `json:"is_current"`
	ModifiedAt time.Time `json:"modified_at"`
}

package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
)

// CreateCorrespondenceRequest defines the data needed to register a new
// correspondence item. Wire names are the canonical snake_case fields of the
// upstream API.
type CreateCorrespondenceRequest struct {
	ReferenceNumber string   `json:"reference_number"` // generated when empty
	Subject         string   `json:"subject" binding:"required"`
	Summary         string   `json:"summary"`
	SenderName      string   `json:"sender_name"`
	SenderOrg       string   `json:"sender_organization"`
	Source          string   `json:"source" binding:"omitempty,oneof=internal external"`
	Priority        string   `json:"priority" binding:"omitempty,oneof=urgent high normal low"`
	Direction       string   `json:"direction" binding:"omitempty,oneof=upward downward"`
	DocumentType    string   `json:"document_type"`
	OwningOfficeID  string   `json:"owning_office_id"`
	CurrentOfficeID string   `json:"current_office_id"` // defaults to owning office
	DivisionID      string   `json:"division_id"`
	DepartmentID    string   `json:"department_id"`
	LinkedDocuments []string `json:"linked_document_ids"`
}

// CorrespondenceResponse defines the data returned for a correspondence item.
type CorrespondenceResponse struct {
	ID                string                 `json:"id"`
	ReferenceNumber   string                 `json:"reference_number"`
	Subject           string                 `json:"subject"`
	Summary           string                 `json:"summary"`
	SenderName        string                 `json:"sender_name"`
	SenderOrg         string                 `json:"sender_organization"`
	Source            string                 `json:"source"`
	Priority          string                 `json:"priority"`
	Direction         string                 `json:"direction"`
	DocumentType      string                 `json:"document_type"`
	Status            string                 `json:"status"`
	ArchiveLevel      string                 `json:"archive_level,omitempty"`
	OwningOfficeID    string                 `json:"owning_office_id,omitempty"`
	CurrentOfficeID   string                 `json:"current_office_id,omitempty"`
	CurrentApproverID string                 `json:"current_approver_id,omitempty"`
	DivisionID        string                 `json:"division_id,omitempty"`
	DepartmentID      string                 `json:"department_id,omitempty"`
	LinkedDocumentIDs []string               `json:"linked_document_ids"`
	Distribution      []DistributionResponse `json:"distribution"`
	Attachments       []AttachmentResponse   `json:"attachments"`
	CreatedAt         time.Time              `json:"created_at"`
	CreatedBy         string                 `json:"created_by"`
	UpdatedAt         time.Time              `json:"updated_at"`
	CompletedAt       *time.Time             `json:"completed_at,omitempty"`
}

// DistributionResponse defines a distribution list entry on the wire.
type DistributionResponse struct {
	ID            string    `json:"id"`
	RecipientType string    `json:"recipient_type"`
	DirectorateID string    `json:"directorate_id,omitempty"`
	DivisionID    string    `json:"division_id,omitempty"`
	DepartmentID  string    `json:"department_id,omitempty"`
	Purpose       string    `json:"purpose"`
	AddedByID     string    `json:"added_by_id"`
	AddedAt       time.Time `json:"added_at"`
}

// AttachmentResponse defines attachment metadata on the wire.
type AttachmentResponse struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	FileURL    string    `json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// AddDistributionRequest adds one recipient to an item's distribution list.
type AddDistributionRequest struct {
	RecipientType string `json:"recipient_type" binding:"required,oneof=directorate division department"`
	DirectorateID string `json:"directorate_id"`
	DivisionID    string `json:"division_id"`
	DepartmentID  string `json:"department_id"`
	Purpose       string `json:"purpose" binding:"omitempty,oneof=information action comment"`
}

// ListCorrespondenceParams defines query filters for listing items.
type ListCorrespondenceParams struct {
	Status          string `form:"status"`
	Priority        string `form:"priority"`
	Source          string `form:"source"`
	Direction       string `form:"direction"`
	DivisionID      string `form:"division_id"`
	DepartmentID    string `form:"department_id"`
	CurrentOfficeID string `form:"current_office_id"`
}

// ToDomainFilter converts list params to the domain filter.
func (p ListCorrespondenceParams) ToDomainFilter() domain.CorrespondenceFilter {
	return domain.CorrespondenceFilter{
		Status:          domain.CorrespondenceStatus(p.Status),
		Priority:        domain.CorrespondencePriority(p.Priority),
		Source:          domain.CorrespondenceSource(p.Source),
		Direction:       domain.Direction(p.Direction),
		DivisionID:      p.DivisionID,
		DepartmentID:    p.DepartmentID,
		CurrentOfficeID: p.CurrentOfficeID,
	}
}

// CorrespondencePatch carries the typed, whitelisted patch fields. Pointers
// distinguish "field absent" from zero values.
type CorrespondencePatch struct {
	Status            *string  `json:"status"`
	Direction         *string  `json:"direction"`
	CurrentApproverID *string  `json:"current_approver_id"`
	DivisionID        *string  `json:"division_id"`
	DepartmentID      *string  `json:"department_id"`
	Priority          *string  `json:"priority"`
	ReferenceNumber   *string  `json:"reference_number"`
	LinkedDocumentIDs []string `json:"linked_document_ids"`
	ArchiveLevel      *string  `json:"archive_level"`
	Subject           *string  `json:"subject"`
}

// patchableFields is the exhaustive whitelist of patchable wire fields.
var patchableFields = map[string]struct{}{
	"status":              {},
	"direction":           {},
	"current_approver_id": {},
	"division_id":         {},
	"department_id":       {},
	"priority":            {},
	"reference_number":    {},
	"linked_document_ids": {},
	"archive_level":       {},
	"subject":             {},
}

// ParseCorrespondencePatch decodes a raw patch body and enforces the field
// whitelist before any typed unmarshalling. Unknown fields are rejected with
// apperrors.ErrInvalidField so the caller fails before touching the store.
func ParseCorrespondencePatch(body []byte) (CorrespondencePatch, error) {
	var patch CorrespondencePatch

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return patch, fmt.Errorf("%w: malformed patch body: %v", apperrors.ErrValidation, err)
	}
	for field := range raw {
		if _, ok := patchableFields[field]; !ok {
			return patch, fmt.Errorf("%w: %q", apperrors.ErrInvalidField, field)
		}
	}
	if err := json.Unmarshal(body, &patch); err != nil {
		return patch, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return patch, nil
}

// IsEmpty reports whether the patch carries no fields at all.
func (p CorrespondencePatch) IsEmpty() bool {
	return p.Status == nil && p.Direction == nil && p.CurrentApproverID == nil &&
		p.DivisionID == nil && p.DepartmentID == nil && p.Priority == nil &&
		p.ReferenceNumber == nil && p.LinkedDocumentIDs == nil &&
		p.ArchiveLevel == nil && p.Subject == nil
}

// ToCorrespondenceResponse converts a domain item to its wire representation.
func ToCorrespondenceResponse(c *domain.Correspondence) CorrespondenceResponse {
	resp := CorrespondenceResponse{
		ID:                c.CorrespondenceID,
		ReferenceNumber:   c.ReferenceNumber,
		Subject:           c.Subject,
		Summary:           c.Summary,
		SenderName:        c.SenderName,
		SenderOrg:         c.SenderOrg,
		Source:            string(c.Source),
		Priority:          string(c.Priority),
		Direction:         string(c.Direction),
		DocumentType:      string(c.DocumentType),
		Status:            string(c.Status),
		ArchiveLevel:      string(c.ArchiveLevel),
		OwningOfficeID:    c.OwningOfficeID,
		CurrentOfficeID:   c.EffectiveCurrentOfficeID(),
		CurrentApproverID: c.CurrentApproverID,
		DivisionID:        c.DivisionID,
		DepartmentID:      c.DepartmentID,
		LinkedDocumentIDs: c.LinkedDocumentIDs,
		CreatedAt:         c.CreatedAt,
		CreatedBy:         c.CreatedBy,
		UpdatedAt:         c.LastUpdatedAt,
		CompletedAt:       c.CompletedAt,
	}
	if resp.LinkedDocumentIDs == nil {
		resp.LinkedDocumentIDs = []string{}
	}
	resp.Distribution = make([]DistributionResponse, len(c.Distribution))
	for i, d := range c.Distribution {
		resp.Distribution[i] = ToDistributionResponse(d)
	}
	resp.Attachments = make([]AttachmentResponse, len(c.Attachments))
	for i, a := range c.Attachments {
		resp.Attachments[i] = ToAttachmentResponse(a)
	}
	return resp
}

// ToListCorrespondenceResponse converts a slice of domain items.
func ToListCorrespondenceResponse(items []domain.Correspondence) []CorrespondenceResponse {
	res := make([]CorrespondenceResponse, len(items))
	for i := range items {
		res[i] = ToCorrespondenceResponse(&items[i])
	}
	return res
}

// ToDistributionResponse converts one distribution entry.
func ToDistributionResponse(d domain.Distribution) DistributionResponse {
	return DistributionResponse{
		ID:            d.DistributionID,
		RecipientType: string(d.RecipientType),
		DirectorateID: d.DirectorateID,
		DivisionID:    d.DivisionID,
		DepartmentID:  d.DepartmentID,
		Purpose:       string(d.Purpose),
		AddedByID:     d.AddedByID,
		AddedAt:       d.AddedAt,
	}
}

// ToAttachmentResponse converts one attachment metadata entry.
func ToAttachmentResponse(a domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:         a.AttachmentID,
		FileName:   a.FileName,
		FileType:   a.FileType,
		FileSize:   a.FileSize,
		FileURL:    a.FileURL,
		UploadedAt: a.UploadedAt,
	}
}

// ToDomainDraft converts a create request to a domain draft. Identity and
// audit fields are assigned by the service, never by the caller.
func (r CreateCorrespondenceRequest) ToDomainDraft() domain.Correspondence {
	return domain.Correspondence{
		ReferenceNumber:   r.ReferenceNumber,
		Subject:           r.Subject,
		Summary:           r.Summary,
		SenderName:        r.SenderName,
		SenderOrg:         r.SenderOrg,
		Source:            domain.CorrespondenceSource(r.Source),
		Priority:          domain.CorrespondencePriority(r.Priority),
		Direction:         domain.Direction(r.Direction),
		DocumentType:      domain.DocumentType(r.DocumentType),
		OwningOfficeID:    r.OwningOfficeID,
		CurrentOfficeID:   r.CurrentOfficeID,
		DivisionID:        r.DivisionID,
		DepartmentID:      r.DepartmentID,
		LinkedDocumentIDs: r.LinkedDocuments,
	}
}

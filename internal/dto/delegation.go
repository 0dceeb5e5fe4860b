package dto

import (
	"time"

	"github.com/npadigital/correspondence_app/internal/core/domain"
)

// CreateDelegationRequest grants an assistant authority to act for an
// executive on a single correspondence item.
type CreateDelegationRequest struct {
	CorrespondenceID string `json:"correspondence" binding:"required"`
	ExecutiveID      string `json:"executive_id" binding:"required"`
	AssistantID      string `json:"assistant_id" binding:"required"`
	AssistantType    string `json:"assistant_type" binding:"required,oneof=PA TA"`
	Notes            string `json:"notes"`
}

// DelegationResponse is one delegation grant on the wire.
type DelegationResponse struct {
	ID               string     `json:"id"`
	CorrespondenceID string     `json:"correspondence"`
	ExecutiveID      string     `json:"executive_id"`
	AssistantID      string     `json:"assistant_id"`
	AssistantType    string     `json:"assistant_type"`
	Status           string     `json:"status"`
	Notes            string     `json:"notes"`
	DelegatedAt      time.Time  `json:"delegated_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// ListDelegationsParams filters the delegations listing.
type ListDelegationsParams struct {
	CorrespondenceID string `form:"correspondence"`
	ExecutiveID      string `form:"executive_id"`
	AssistantID      string `form:"assistant_id"`
	Status           string `form:"status"`
}

// ToDelegationResponse converts a domain delegation.
func ToDelegationResponse(d *domain.Delegation) DelegationResponse {
	return DelegationResponse{
		ID:               d.DelegationID,
		CorrespondenceID: d.CorrespondenceID,
		ExecutiveID:      d.ExecutiveID,
		AssistantID:      d.AssistantID,
		AssistantType:    string(d.AssistantType),
		Status:           string(d.Status),
		Notes:            d.Notes,
		DelegatedAt:      d.DelegatedAt,
		CompletedAt:      d.CompletedAt,
	}
}

// ToListDelegationResponse converts a slice of domain delegations.
func ToListDelegationResponse(delegations []domain.Delegation) []DelegationResponse {
	res := make([]DelegationResponse, len(delegations))
	for i := range delegations {
		res[i] = ToDelegationResponse(&delegations[i])
	}
	return res
}

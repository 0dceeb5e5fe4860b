package domain

import "time"

// DelegationStatus tracks the lifecycle of a delegation grant.
// active -> revoked and active -> completed are the only transitions;
// revoked and completed are terminal.
type DelegationStatus string

const (
	DelegationActive    DelegationStatus = "active"
	DelegationRevoked   DelegationStatus = "revoked"
	DelegationCompleted DelegationStatus = "completed"
)

// Delegation lets an assistant or secretary act on an executive's behalf on
// a single correspondence item. At most one active delegation may exist per
// (correspondence, executive) pair.
type Delegation struct {
	DelegationID     string           `json:"delegationID"`
	CorrespondenceID string           `json:"correspondenceID"`
	ExecutiveID      string           `json:"executiveID"`
	AssistantID      string           `json:"assistantID"`
	AssistantType    AssistantType    `json:"assistantType"`
	Status           DelegationStatus `json:"status"`
	Notes            string           `json:"notes"`
	DelegatedAt      time.Time        `json:"delegatedAt"`
	CompletedAt      *time.Time       `json:"completedAt,omitempty"`
}

// IsActive reports whether the delegation currently authorizes the assistant.
func (d Delegation) IsActive() bool {
	return d.Status == DelegationActive
}

// DelegationFilter narrows delegation queries. Zero values mean "no filter".
type DelegationFilter struct {
	CorrespondenceID string
	ExecutiveID      string
	AssistantID      string
	Status           DelegationStatus
}

package dto

import (
	"time"

	"github.com/npadigital/correspondence_app/internal/core/domain"
)

// ReassignRequest is the body of the reassignment endpoint. Field names
// match the upstream API contract.
type ReassignRequest struct {
	OwningOfficeID *string `json:"owning_office_id"`
	TargetOfficeID *string `json:"target_office_id"`
	TargetUserID   *string `json:"target_user_id"`
	Reason         string  `json:"reason"`
}

// RoutingSnapshotResponse is the routing triple at one point in time.
type RoutingSnapshotResponse struct {
	OwningOfficeID    string `json:"owning_office_id,omitempty"`
	CurrentOfficeID   string `json:"current_office_id,omitempty"`
	CurrentApproverID string `json:"current_approver_id,omitempty"`
}

// ReassignPreviewResponse is the validated diff returned by the preview
// call, shown to the caller before an explicit commit.
type ReassignPreviewResponse struct {
	CorrespondenceID string                  `json:"correspondence_id"`
	Previous         RoutingSnapshotResponse `json:"previous"`
	Proposed         RoutingSnapshotResponse `json:"proposed"`
}

// ReassignmentAuditResponse is one committed reassignment audit record.
type ReassignmentAuditResponse struct {
	ID               string                  `json:"id"`
	CorrespondenceID string                  `json:"correspondence_id"`
	ActorID          string                  `json:"actor_id"`
	Reason           string                  `json:"reason"`
	Previous         RoutingSnapshotResponse `json:"previous_values"`
	New              RoutingSnapshotResponse `json:"new_values"`
	Timestamp        time.Time               `json:"timestamp"`
}

// ToRoutingSnapshotResponse converts a domain routing snapshot.
func ToRoutingSnapshotResponse(s domain.RoutingSnapshot) RoutingSnapshotResponse {
	return RoutingSnapshotResponse{
		OwningOfficeID:    s.OwningOfficeID,
		CurrentOfficeID:   s.CurrentOfficeID,
		CurrentApproverID: s.CurrentApproverID,
	}
}

// ToReassignPreviewResponse converts a validated preview diff.
func ToReassignPreviewResponse(p domain.ReassignmentPreview) ReassignPreviewResponse {
	return ReassignPreviewResponse{
		CorrespondenceID: p.CorrespondenceID,
		Previous:         ToRoutingSnapshotResponse(p.Previous),
		Proposed:         ToRoutingSnapshotResponse(p.Proposed),
	}
}

// ToReassignmentAuditResponse converts one audit record.
func ToReassignmentAuditResponse(a domain.ReassignmentAudit) ReassignmentAuditResponse {
	return ReassignmentAuditResponse{
		ID:               a.AuditID,
		CorrespondenceID: a.CorrespondenceID,
		ActorID:          a.ActorID,
		Reason:           a.Reason,
		Previous:         ToRoutingSnapshotResponse(a.PreviousValues),
		New:              ToRoutingSnapshotResponse(a.NewValues),
		Timestamp:        a.Timestamp,
	}
}

// ToDomainChange converts the request to the domain change set.
func (r ReassignRequest) ToDomainChange() domain.ReassignmentChange {
	return domain.ReassignmentChange{
		OwningOfficeID:    r.OwningOfficeID,
		CurrentOfficeID:   r.TargetOfficeID,
		CurrentApproverID: r.TargetUserID,
		Reason:            r.Reason,
	}
}

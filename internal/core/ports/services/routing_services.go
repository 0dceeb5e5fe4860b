package services

import (
	"context"

	"github.com/npadigital/correspondence_app/internal/core/domain"
)

// RoutingSvcFacade defines office reassignment operations. Reassignment is
// two-phase: a validation pass that produces a preview of the routing change,
// and a commit that applies it atomically with an audit record.
type RoutingSvcFacade interface {
	// PreviewReassignment validates a proposed routing change without
	// applying it and returns the before/after routing snapshots.
	PreviewReassignment(ctx context.Context, correspondenceID string, change domain.ReassignmentChange) (*domain.ReassignmentPreview, error)

	// Reassign validates and commits a routing change, recording an audit
	// entry alongside the update.
	Reassign(ctx context.Context, correspondenceID string, change domain.ReassignmentChange, actorUserID string) (*domain.Correspondence, error)

	// ListReassignmentAudits retrieves the reassignment trail for an item,
	// oldest first.
	ListReassignmentAudits(ctx context.Context, correspondenceID string) ([]domain.ReassignmentAudit, error)
}

package repositories

import (
	"context"

	"github.com/npadigital/correspondence_app/internal/core/domain"
)

// CorrespondenceReader defines read operations for correspondence data
type CorrespondenceReader interface {
	// FindCorrespondenceByID retrieves a specific item with its distribution
	// list and attachment metadata.
	FindCorrespondenceByID(ctx context.Context, correspondenceID string) (*domain.Correspondence, error)

	// ListCorrespondence retrieves items matching the filter, newest first.
	ListCorrespondence(ctx context.Context, filter domain.CorrespondenceFilter) ([]domain.Correspondence, error)

	// CountCorrespondence returns the total number of items, used for
	// reference number generation.
	CountCorrespondence(ctx context.Context) (int, error)
}

// CorrespondenceWriter defines write operations for correspondence data
type CorrespondenceWriter interface {
	// SaveCorrespondence persists a new item.
	SaveCorrespondence(ctx context.Context, c domain.Correspondence) error

	// UpdateCorrespondence updates an existing item's mutable columns.
	UpdateCorrespondence(ctx context.Context, c domain.Correspondence) error

	// UpdateRoutingWithAudit atomically updates the routing triple and
	// inserts the reassignment audit row in one transaction.
	UpdateRoutingWithAudit(ctx context.Context, c domain.Correspondence, audit domain.ReassignmentAudit) error

	// SaveDistribution appends one distribution list entry.
	SaveDistribution(ctx context.Context, d domain.Distribution) error
}

// ReassignmentAuditReader exposes the committed reassignment trail.
type ReassignmentAuditReader interface {
	// ListReassignmentAudits retrieves the audit trail for one item,
	// oldest first.
	ListReassignmentAudits(ctx context.Context, correspondenceID string) ([]domain.ReassignmentAudit, error)
}

// CorrespondenceRepositoryFacade combines all correspondence repository interfaces
type CorrespondenceRepositoryFacade interface {
	CorrespondenceReader
	CorrespondenceWriter
	ReassignmentAuditReader
}

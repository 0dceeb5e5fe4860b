package repositories

import (
	"context"
	"time"

	"github.com/npadigital/correspondence_app/internal/core/domain"
)

// DelegationReader defines read operations for delegation grants
type DelegationReader interface {
	// FindDelegationByID retrieves a specific delegation.
	FindDelegationByID(ctx context.Context, delegationID string) (*domain.Delegation, error)

	// FindActiveDelegationForExecutive retrieves the active delegation for a
	// correspondence/executive pair, or ErrNotFound.
	FindActiveDelegationForExecutive(ctx context.Context, correspondenceID, executiveID string) (*domain.Delegation, error)

	// FindActiveDelegationForAssistant retrieves the active delegation
	// authorizing an assistant on a correspondence, or ErrNotFound.
	FindActiveDelegationForAssistant(ctx context.Context, correspondenceID, assistantID string) (*domain.Delegation, error)

	// ListDelegations retrieves delegations matching the filter.
	ListDelegations(ctx context.Context, filter domain.DelegationFilter) ([]domain.Delegation, error)
}

// DelegationWriter defines write operations for delegation grants
type DelegationWriter interface {
	// SaveDelegation persists a new delegation.
	SaveDelegation(ctx context.Context, delegation domain.Delegation) error

	// UpdateDelegationStatus transitions a delegation's status.
	UpdateDelegationStatus(ctx context.Context, delegationID string, status domain.DelegationStatus, completedAt *time.Time) error
}

// DelegationRepositoryFacade combines the delegation repository interfaces
type DelegationRepositoryFacade interface {
	DelegationReader
	DelegationWriter
}

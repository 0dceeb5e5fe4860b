package services

import (
	"context"

	"github.com/npadigital/correspondence_app/internal/core/domain"
	"github.com/npadigital/correspondence_app/internal/dto"
)

// DelegationSvcFacade defines operations over delegation grants.
type DelegationSvcFacade interface {
	// CreateDelegation grants an assistant authority over one item on an
	// executive's behalf. Only one active delegation may exist per
	// (correspondence, executive) pair.
	CreateDelegation(ctx context.Context, req dto.CreateDelegationRequest, executiveID string) (*domain.Delegation, error)

	// GetDelegationByID retrieves a specific delegation.
	GetDelegationByID(ctx context.Context, delegationID string) (*domain.Delegation, error)

	// ListDelegations retrieves delegations matching the filter.
	ListDelegations(ctx context.Context, filter domain.DelegationFilter) ([]domain.Delegation, error)

	// RevokeDelegation transitions an active delegation to revoked.
	RevokeDelegation(ctx context.Context, delegationID string, actorUserID string) (*domain.Delegation, error)

	// CompleteDelegation transitions an active delegation to completed.
	CompleteDelegation(ctx context.Context, delegationID string, actorUserID string) (*domain.Delegation, error)
}

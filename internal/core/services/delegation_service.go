package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	portsrepo "github.com/npadigital/correspondence_app/internal/core/ports/repositories"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
	"github.com/npadigital/correspondence_app/internal/dto"
	"github.com/google/uuid"
)

// delegationService implements the DelegationSvcFacade interface.
type delegationService struct {
	BaseService
	delegationRepo portsrepo.DelegationRepositoryFacade
	corrRepo       portsrepo.CorrespondenceReader
	userRepo       portsrepo.UserReader
}

// NewDelegationService creates a new delegation service
func NewDelegationService(
	delegationRepo portsrepo.DelegationRepositoryFacade,
	corrRepo portsrepo.CorrespondenceReader,
	userRepo portsrepo.UserReader,
) portssvc.DelegationSvcFacade {
	return &delegationService{
		delegationRepo: delegationRepo,
		corrRepo:       corrRepo,
		userRepo:       userRepo,
	}
}

// Ensure delegationService implements the DelegationSvcFacade interface
var _ portssvc.DelegationSvcFacade = (*delegationService)(nil)

func (s *delegationService) CreateDelegation(ctx context.Context, req dto.CreateDelegationRequest, executiveID string) (*domain.Delegation, error) {
	if req.ExecutiveID != "" {
		executiveID = req.ExecutiveID
	}
	if executiveID == req.AssistantID {
		return nil, fmt.Errorf("%w: an executive cannot delegate to themselves", apperrors.ErrValidation)
	}

	if _, err := s.corrRepo.FindCorrespondenceByID(ctx, req.CorrespondenceID); err != nil {
		return nil, err
	}

	assistant, err := s.userRepo.FindUserByID(ctx, req.AssistantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: assistant %s does not exist", apperrors.ErrValidation, req.AssistantID)
		}
		return nil, err
	}
	if !assistant.IsActive {
		return nil, fmt.Errorf("%w: assistant %s is inactive", apperrors.ErrValidation, req.AssistantID)
	}

	existing, err := s.delegationRepo.FindActiveDelegationForExecutive(ctx, req.CorrespondenceID, executiveID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for active delegation",
			slog.String("correspondence_id", req.CorrespondenceID),
			slog.String("executive_id", executiveID))
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateActiveDelegation
	}

	delegation := domain.Delegation{
		DelegationID:     uuid.NewString(),
		CorrespondenceID: req.CorrespondenceID,
		ExecutiveID:      executiveID,
		AssistantID:      req.AssistantID,
		AssistantType:    domain.AssistantType(req.AssistantType),
		Status:           domain.DelegationActive,
		Notes:            req.Notes,
		DelegatedAt:      time.Now(),
	}

	if err := s.delegationRepo.SaveDelegation(ctx, delegation); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Partial unique index on active delegations caught a concurrent create.
			return nil, apperrors.ErrDuplicateActiveDelegation
		}
		s.LogError(ctx, err, "Failed to save delegation",
			slog.String("correspondence_id", req.CorrespondenceID))
		return nil, err
	}

	s.LogInfo(ctx, "Delegation created",
		slog.String("delegation_id", delegation.DelegationID),
		slog.String("correspondence_id", req.CorrespondenceID),
		slog.String("executive_id", executiveID),
		slog.String("assistant_id", req.AssistantID))
	return &delegation, nil
}

func (s *delegationService) GetDelegationByID(ctx context.Context, delegationID string) (*domain.Delegation, error) {
	delegation, err := s.delegationRepo.FindDelegationByID(ctx, delegationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find delegation by ID",
				slog.String("delegation_id", delegationID))
		}
		return nil, err
	}
	return delegation, nil
}

func (s *delegationService) ListDelegations(ctx context.Context, filter domain.DelegationFilter) ([]domain.Delegation, error) {
	delegations, err := s.delegationRepo.ListDelegations(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list delegations")
		return nil, err
	}
	return delegations, nil
}

func (s *delegationService) RevokeDelegation(ctx context.Context, delegationID string, actorUserID string) (*domain.Delegation, error) {
	return s.terminate(ctx, delegationID, actorUserID, domain.DelegationRevoked)
}

func (s *delegationService) CompleteDelegation(ctx context.Context, delegationID string, actorUserID string) (*domain.Delegation, error) {
	return s.terminate(ctx, delegationID, actorUserID, domain.DelegationCompleted)
}

// terminate moves an active delegation into one of its terminal states.
func (s *delegationService) terminate(ctx context.Context, delegationID string, actorUserID string, target domain.DelegationStatus) (*domain.Delegation, error) {
	delegation, err := s.delegationRepo.FindDelegationByID(ctx, delegationID)
	if err != nil {
		return nil, err
	}
	if !delegation.IsActive() {
		return nil, fmt.Errorf("%w: delegation is already %s", apperrors.ErrValidation, delegation.Status)
	}

	var completedAt *time.Time
	if target == domain.DelegationCompleted {
		now := time.Now()
		completedAt = &now
	}

	if err := s.delegationRepo.UpdateDelegationStatus(ctx, delegationID, target, completedAt); err != nil {
		s.LogError(ctx, err, "Failed to update delegation status",
			slog.String("delegation_id", delegationID),
			slog.String("target_status", string(target)))
		return nil, err
	}

	delegation.Status = target
	delegation.CompletedAt = completedAt
	s.LogInfo(ctx, "Delegation closed",
		slog.String("delegation_id", delegationID),
		slog.String("status", string(target)),
		slog.String("actor_id", actorUserID))
	return delegation, nil
}

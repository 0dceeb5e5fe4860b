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

// minuteService implements the MinuteSvcFacade interface over the
// append-only ledger.
type minuteService struct {
	BaseService
	minuteRepo     portsrepo.MinuteRepositoryFacade
	corrRepo       portsrepo.CorrespondenceRepositoryFacade
	delegationRepo portsrepo.DelegationReader
	userRepo       portsrepo.UserReader
}

// NewMinuteService creates a new minute ledger service
func NewMinuteService(
	minuteRepo portsrepo.MinuteRepositoryFacade,
	corrRepo portsrepo.CorrespondenceRepositoryFacade,
	delegationRepo portsrepo.DelegationReader,
	userRepo portsrepo.UserReader,
) portssvc.MinuteSvcFacade {
	return &minuteService{
		minuteRepo:     minuteRepo,
		corrRepo:       corrRepo,
		delegationRepo: delegationRepo,
		userRepo:       userRepo,
	}
}

// Ensure minuteService implements the MinuteSvcFacade interface
var _ portssvc.MinuteSvcFacade = (*minuteService)(nil)

func (s *minuteService) AppendMinute(ctx context.Context, req dto.CreateMinuteRequest, actorUserID string) (*domain.Minute, error) {
	item, err := s.corrRepo.FindCorrespondenceByID(ctx, req.CorrespondenceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find correspondence for minute",
				slog.String("correspondence_id", req.CorrespondenceID))
		}
		return nil, err
	}

	actor, err := s.userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve minute actor",
			slog.String("actor_id", actorUserID))
		return nil, err
	}

	minute := req.ToDomainDraft()
	if minute.Delegated() {
		if err := s.checkDelegation(ctx, minute, actorUserID); err != nil {
			return nil, err
		}
	}

	maxStep, err := s.minuteRepo.MaxStepNumber(ctx, item.CorrespondenceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to determine next step number",
			slog.String("correspondence_id", item.CorrespondenceID))
		return nil, err
	}

	minute.MinuteID = uuid.NewString()
	minute.UserID = actor.UserID
	minute.UserName = actor.Name
	minute.GradeLevel = actor.GradeLevel
	minute.StepNumber = maxStep + 1
	minute.Timestamp = time.Now()
	if minute.Mentions == nil {
		minute.Mentions = []string{}
	}

	if err := s.minuteRepo.SaveMinute(ctx, minute); err != nil {
		s.LogError(ctx, err, "Failed to append minute",
			slog.String("correspondence_id", item.CorrespondenceID),
			slog.Int("step_number", minute.StepNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Minute appended",
		slog.String("correspondence_id", item.CorrespondenceID),
		slog.String("minute_id", minute.MinuteID),
		slog.Int("step_number", minute.StepNumber),
		slog.String("action_type", string(minute.ActionType)))

	s.promoteToInProgress(ctx, item, actorUserID)
	return &minute, nil
}

func (s *minuteService) ListMinutes(ctx context.Context, filter domain.MinuteFilter) ([]domain.Minute, error) {
	minutes, err := s.minuteRepo.ListMinutes(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list minutes",
			slog.String("correspondence_id", filter.CorrespondenceID))
		return nil, err
	}
	return minutes, nil
}

// checkDelegation requires an active delegation authorizing the actor on
// this item when the minute claims delegated authority.
func (s *minuteService) checkDelegation(ctx context.Context, minute domain.Minute, actorUserID string) error {
	delegation, err := s.delegationRepo.FindActiveDelegationForAssistant(ctx, minute.CorrespondenceID, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNoActiveDelegation
		}
		s.LogError(ctx, err, "Failed to look up delegation for minute",
			slog.String("correspondence_id", minute.CorrespondenceID),
			slog.String("actor_id", actorUserID))
		return err
	}
	if minute.ActedByAssistant && minute.AssistantType != "" && delegation.AssistantType != minute.AssistantType {
		return fmt.Errorf("%w: delegation grants %s authority, not %s",
			apperrors.ErrValidation, delegation.AssistantType, minute.AssistantType)
	}
	return nil
}

// promoteToInProgress moves a pending item forward once the first action
// lands on it. A failed promotion is logged; the minute itself already
// committed.
func (s *minuteService) promoteToInProgress(ctx context.Context, item *domain.Correspondence, actorUserID string) {
	if item.Status != domain.StatusPending {
		return
	}
	updated := *item
	updated.Status = domain.StatusInProgress
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = actorUserID
	if err := s.corrRepo.UpdateCorrespondence(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to promote correspondence to in-progress",
			slog.String("correspondence_id", item.CorrespondenceID))
	}
}

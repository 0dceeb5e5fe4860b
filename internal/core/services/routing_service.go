package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	portsrepo "github.com/npadigital/correspondence_app/internal/core/ports/repositories"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// Bounds on the mandatory reassignment reason, in characters after trimming.
const (
	minReassignReasonLen = 10
	maxReassignReasonLen = 500
)

// routingService implements the RoutingSvcFacade interface. Reassignment is
// two-phase: validation produces a preview, and the commit applies the
// routing change together with its audit record in one transaction.
type routingService struct {
	BaseService
	corrRepo portsrepo.CorrespondenceRepositoryFacade
	userRepo portsrepo.UserReader
	orgSvc   portssvc.OrganizationSvcFacade
	snapshot portssvc.CorrespondenceSnapshotSvc
}

// RoutingServiceOption is a functional option for configuring the routing service
type RoutingServiceOption func(*routingService)

// WithRoutingUserReader adds the user repository used for approver validation
func WithRoutingUserReader(repo portsrepo.UserReader) RoutingServiceOption {
	return func(s *routingService) {
		s.userRepo = repo
	}
}

// WithRoutingOrganizationService adds the organization service used for office validation
func WithRoutingOrganizationService(svc portssvc.OrganizationSvcFacade) RoutingServiceOption {
	return func(s *routingService) {
		s.orgSvc = svc
	}
}

// WithSnapshotRefresher adds the snapshot holder refreshed after each commit
func WithSnapshotRefresher(svc portssvc.CorrespondenceSnapshotSvc) RoutingServiceOption {
	return func(s *routingService) {
		s.snapshot = svc
	}
}

// NewRoutingService creates a new routing service with the provided options
func NewRoutingService(repo portsrepo.CorrespondenceRepositoryFacade, options ...RoutingServiceOption) portssvc.RoutingSvcFacade {
	svc := &routingService{
		corrRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure routingService implements the RoutingSvcFacade interface
var _ portssvc.RoutingSvcFacade = (*routingService)(nil)

func (s *routingService) PreviewReassignment(ctx context.Context, correspondenceID string, change domain.ReassignmentChange) (*domain.ReassignmentPreview, error) {
	item, _, preview, err := s.validate(ctx, correspondenceID, change)
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Reassignment validated",
		slog.String("correspondence_id", item.CorrespondenceID))
	return preview, nil
}

func (s *routingService) Reassign(ctx context.Context, correspondenceID string, change domain.ReassignmentChange, actorUserID string) (*domain.Correspondence, error) {
	item, reason, preview, err := s.validate(ctx, correspondenceID, change)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updated := *item
	updated.OwningOfficeID = preview.Proposed.OwningOfficeID
	updated.CurrentOfficeID = preview.Proposed.CurrentOfficeID
	updated.CurrentApproverID = preview.Proposed.CurrentApproverID
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorUserID

	audit := domain.ReassignmentAudit{
		AuditID:          uuid.NewString(),
		CorrespondenceID: item.CorrespondenceID,
		ActorID:          actorUserID,
		Reason:           reason,
		PreviousValues:   preview.Previous,
		NewValues:        preview.Proposed,
		Timestamp:        now,
	}

	if err := s.corrRepo.UpdateRoutingWithAudit(ctx, updated, audit); err != nil {
		s.LogError(ctx, err, "Failed to commit reassignment",
			slog.String("correspondence_id", item.CorrespondenceID))
		return nil, err
	}

	s.LogInfo(ctx, "Correspondence reassigned",
		slog.String("correspondence_id", item.CorrespondenceID),
		slog.String("from_office", preview.Previous.CurrentOfficeID),
		slog.String("to_office", preview.Proposed.CurrentOfficeID),
		slog.String("actor_id", actorUserID))

	if s.snapshot != nil {
		if err := s.snapshot.RefreshSnapshot(ctx); err != nil {
			s.LogError(ctx, err, "Snapshot refresh after reassignment failed")
		}
	}
	return &updated, nil
}

func (s *routingService) ListReassignmentAudits(ctx context.Context, correspondenceID string) ([]domain.ReassignmentAudit, error) {
	if _, err := s.corrRepo.FindCorrespondenceByID(ctx, correspondenceID); err != nil {
		return nil, err
	}
	audits, err := s.corrRepo.ListReassignmentAudits(ctx, correspondenceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reassignment audits",
			slog.String("correspondence_id", correspondenceID))
		return nil, err
	}
	return audits, nil
}

// validate runs the full reassignment validation pass and returns the item,
// the trimmed reason and the before/after diff. Nothing is written.
func (s *routingService) validate(ctx context.Context, correspondenceID string, change domain.ReassignmentChange) (*domain.Correspondence, string, *domain.ReassignmentPreview, error) {
	item, err := s.corrRepo.FindCorrespondenceByID(ctx, correspondenceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find correspondence for reassignment",
				slog.String("correspondence_id", correspondenceID))
		}
		return nil, "", nil, err
	}

	previous := domain.RoutingSnapshotOf(*item)
	proposed := previous
	if change.OwningOfficeID != nil {
		proposed.OwningOfficeID = *change.OwningOfficeID
	}
	if change.CurrentOfficeID != nil {
		proposed.CurrentOfficeID = *change.CurrentOfficeID
	}
	if change.CurrentApproverID != nil {
		proposed.CurrentApproverID = *change.CurrentApproverID
	}

	// The no-change check comes before the reason bounds.
	if proposed == previous {
		return nil, "", nil, apperrors.ErrNoChangeRequested
	}

	reason := strings.TrimSpace(change.Reason)
	if n := utf8.RuneCountInString(reason); n < minReassignReasonLen || n > maxReassignReasonLen {
		return nil, "", nil, apperrors.ErrInvalidReason
	}

	if err := s.checkOffice(ctx, change.OwningOfficeID, "owning_office_id"); err != nil {
		return nil, "", nil, err
	}
	if err := s.checkOffice(ctx, change.CurrentOfficeID, "target_office_id"); err != nil {
		return nil, "", nil, err
	}
	if err := s.checkApprover(ctx, change.CurrentApproverID); err != nil {
		return nil, "", nil, err
	}

	return item, reason, &domain.ReassignmentPreview{
		CorrespondenceID: item.CorrespondenceID,
		Previous:         previous,
		Proposed:         proposed,
	}, nil
}

// checkOffice verifies a requested office exists and is active. An explicit
// empty string clears the value and is allowed for the approver only, not
// for offices.
func (s *routingService) checkOffice(ctx context.Context, officeID *string, field string) error {
	if officeID == nil {
		return nil
	}
	if *officeID == "" {
		return fmt.Errorf("%w: %s cannot be cleared", apperrors.ErrValidation, field)
	}
	if s.orgSvc == nil {
		return nil
	}
	office, err := s.orgSvc.GetOfficeByID(ctx, *officeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s %s does not exist", apperrors.ErrValidation, field, *officeID)
		}
		return err
	}
	if !office.IsActive {
		return fmt.Errorf("%w: %s %s is inactive", apperrors.ErrValidation, field, *officeID)
	}
	return nil
}

// checkApprover verifies a requested approver exists and is active. An empty
// string clears the current approver.
func (s *routingService) checkApprover(ctx context.Context, userID *string) error {
	if userID == nil || *userID == "" {
		return nil
	}
	if s.userRepo == nil {
		return nil
	}
	user, err := s.userRepo.FindUserByID(ctx, *userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: target_user_id %s does not exist", apperrors.ErrValidation, *userID)
		}
		return err
	}
	if !user.IsActive {
		return fmt.Errorf("%w: target_user_id %s is inactive", apperrors.ErrValidation, *userID)
	}
	return nil
}

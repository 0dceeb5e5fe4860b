package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	portsrepo "github.com/npadigital/correspondence_app/internal/core/ports/repositories"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
	"github.com/npadigital/correspondence_app/internal/dto"
	"github.com/google/uuid"
)

// referenceNumberPrefix is the registry prefix stamped on generated
// reference numbers: NPA/REG/<USERNAME>/<serial>.
const referenceNumberPrefix = "NPA/REG"

// correspondenceService implements the CorrespondenceSvcFacade interface.
// It keeps an in-memory snapshot of the store, replaced wholesale after
// each successful refresh; a failed mutation or a cancelled refresh never
// leaves a partially updated snapshot behind.
type correspondenceService struct {
	BaseService
	corrRepo portsrepo.CorrespondenceRepositoryFacade
	userRepo portsrepo.UserReader
	orgSvc   portssvc.OrganizationSvcFacade

	mu       sync.RWMutex
	snapshot map[string]domain.Correspondence
}

// CorrespondenceServiceOption is a functional option for configuring the correspondence service
type CorrespondenceServiceOption func(*correspondenceService)

// WithUserReader adds the user repository used for reference number generation
func WithUserReader(repo portsrepo.UserReader) CorrespondenceServiceOption {
	return func(s *correspondenceService) {
		s.userRepo = repo
	}
}

// WithOrganizationService adds the organization service used for office validation
func WithOrganizationService(svc portssvc.OrganizationSvcFacade) CorrespondenceServiceOption {
	return func(s *correspondenceService) {
		s.orgSvc = svc
	}
}

// NewCorrespondenceService creates a new correspondence service with the provided options
func NewCorrespondenceService(repo portsrepo.CorrespondenceRepositoryFacade, options ...CorrespondenceServiceOption) portssvc.CorrespondenceSvcFacade {
	svc := &correspondenceService{
		corrRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure correspondenceService implements the CorrespondenceSvcFacade interface
var _ portssvc.CorrespondenceSvcFacade = (*correspondenceService)(nil)

func (s *correspondenceService) CreateCorrespondence(ctx context.Context, req dto.CreateCorrespondenceRequest, creatorUserID string) (*domain.Correspondence, error) {
	item := req.ToDomainDraft()
	applyDraftDefaults(&item)

	if err := s.validateOffices(ctx, item.OwningOfficeID, item.CurrentOfficeID); err != nil {
		return nil, err
	}

	if item.ReferenceNumber == "" {
		ref, err := s.generateReferenceNumber(ctx, creatorUserID)
		if err != nil {
			s.LogError(ctx, err, "Failed to generate reference number",
				slog.String("creator_id", creatorUserID))
			return nil, err
		}
		item.ReferenceNumber = ref
	}

	now := time.Now()
	item.CorrespondenceID = uuid.NewString()
	item.Status = domain.StatusPending
	item.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	if err := s.corrRepo.SaveCorrespondence(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save correspondence",
			slog.String("correspondence_id", item.CorrespondenceID))
		return nil, err
	}

	s.LogInfo(ctx, "Correspondence registered",
		slog.String("correspondence_id", item.CorrespondenceID),
		slog.String("reference_number", item.ReferenceNumber))
	s.refreshAfterMutation(ctx)
	return &item, nil
}

func (s *correspondenceService) GetCorrespondenceByID(ctx context.Context, correspondenceID string) (*domain.Correspondence, error) {
	s.mu.RLock()
	if s.snapshot != nil {
		if cached, ok := s.snapshot[correspondenceID]; ok {
			s.mu.RUnlock()
			return &cached, nil
		}
	}
	s.mu.RUnlock()

	item, err := s.corrRepo.FindCorrespondenceByID(ctx, correspondenceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find correspondence by ID",
				slog.String("correspondence_id", correspondenceID))
		}
		return nil, err
	}
	return item, nil
}

func (s *correspondenceService) ListCorrespondence(ctx context.Context, filter domain.CorrespondenceFilter) ([]domain.Correspondence, error) {
	if err := s.ensureSnapshot(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	items := make([]domain.Correspondence, 0, len(s.snapshot))
	for _, item := range s.snapshot {
		if filter.Matches(item) {
			items = append(items, item)
		}
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *correspondenceService) PatchCorrespondence(ctx context.Context, correspondenceID string, patch dto.CorrespondencePatch, updaterUserID string) (*domain.Correspondence, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrNoChangeRequested
	}

	item, err := s.corrRepo.FindCorrespondenceByID(ctx, correspondenceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find correspondence for patch",
				slog.String("correspondence_id", correspondenceID))
		}
		return nil, err
	}

	if err := applyPatch(item, patch); err != nil {
		return nil, err
	}

	now := time.Now()
	item.LastUpdatedAt = now
	item.LastUpdatedBy = updaterUserID

	if err := s.corrRepo.UpdateCorrespondence(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update correspondence",
			slog.String("correspondence_id", correspondenceID))
		return nil, err
	}

	s.LogInfo(ctx, "Correspondence patched",
		slog.String("correspondence_id", correspondenceID),
		slog.String("status", string(item.Status)))
	s.refreshAfterMutation(ctx)
	return item, nil
}

func (s *correspondenceService) AddDistribution(ctx context.Context, correspondenceID string, req dto.AddDistributionRequest, creatorUserID string) (*domain.Correspondence, error) {
	item, err := s.corrRepo.FindCorrespondenceByID(ctx, correspondenceID)
	if err != nil {
		return nil, err
	}

	if err := validateDistributionTarget(req); err != nil {
		return nil, err
	}

	entry := domain.Distribution{
		DistributionID:   uuid.NewString(),
		CorrespondenceID: item.CorrespondenceID,
		RecipientType:    domain.RecipientType(req.RecipientType),
		DirectorateID:    req.DirectorateID,
		DivisionID:       req.DivisionID,
		DepartmentID:     req.DepartmentID,
		Purpose:          domain.DistributionPurpose(req.Purpose),
		AddedByID:        creatorUserID,
		AddedAt:          time.Now(),
	}
	if entry.Purpose == "" {
		entry.Purpose = domain.PurposeInformation
	}

	if err := s.corrRepo.SaveDistribution(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save distribution entry",
			slog.String("correspondence_id", correspondenceID))
		return nil, err
	}

	item.Distribution = append(item.Distribution, entry)
	s.refreshAfterMutation(ctx)
	return item, nil
}

// RefreshSnapshot rebuilds the in-memory snapshot from the store. The new
// snapshot is assembled fully before it replaces the old one, so a failure
// partway through, including context cancellation, leaves the previous
// snapshot untouched.
func (s *correspondenceService) RefreshSnapshot(ctx context.Context) error {
	items, err := s.corrRepo.ListCorrespondence(ctx, domain.CorrespondenceFilter{})
	if err != nil {
		return fmt.Errorf("refresh snapshot: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("refresh snapshot: %w", err)
	}

	next := make(map[string]domain.Correspondence, len(items))
	for _, item := range items {
		next[item.CorrespondenceID] = item
	}

	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()

	s.LogDebug(ctx, "Correspondence snapshot refreshed",
		slog.Int("items", len(next)))
	return nil
}

// ensureSnapshot loads the snapshot on first use.
func (s *correspondenceService) ensureSnapshot(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.snapshot != nil
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.RefreshSnapshot(ctx)
}

// refreshAfterMutation keeps the snapshot in sync after a committed write.
// A failed refresh is logged but never fails the mutation; the stale
// snapshot stays consistent and will be replaced by the next refresh.
func (s *correspondenceService) refreshAfterMutation(ctx context.Context) {
	if err := s.RefreshSnapshot(ctx); err != nil {
		s.LogError(ctx, err, "Snapshot refresh after mutation failed")
	}
}

// generateReferenceNumber produces NPA/REG/<USERNAME>/<serial>, where the
// serial is the item count plus one, zero padded to four digits.
func (s *correspondenceService) generateReferenceNumber(ctx context.Context, creatorUserID string) (string, error) {
	username := creatorUserID
	if s.userRepo != nil {
		user, err := s.userRepo.FindUserByID(ctx, creatorUserID)
		if err != nil {
			return "", fmt.Errorf("resolve creator for reference number: %w", err)
		}
		username = user.Username
	}

	count, err := s.corrRepo.CountCorrespondence(ctx)
	if err != nil {
		return "", fmt.Errorf("count correspondence for reference number: %w", err)
	}

	return fmt.Sprintf("%s/%s/%04d", referenceNumberPrefix, username, count+1), nil
}

// validateOffices checks the owning and current offices exist and are active
// when the organization service is available.
func (s *correspondenceService) validateOffices(ctx context.Context, officeIDs ...string) error {
	if s.orgSvc == nil {
		return nil
	}
	for _, officeID := range officeIDs {
		if officeID == "" {
			continue
		}
		office, err := s.orgSvc.GetOfficeByID(ctx, officeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: office %s does not exist", apperrors.ErrValidation, officeID)
			}
			return err
		}
		if !office.IsActive {
			return fmt.Errorf("%w: office %s is inactive", apperrors.ErrValidation, officeID)
		}
	}
	return nil
}

// applyDraftDefaults fills the enum defaults for a newly registered item.
func applyDraftDefaults(item *domain.Correspondence) {
	if item.Source == "" {
		item.Source = domain.SourceExternal
	}
	if item.Priority == "" {
		item.Priority = domain.PriorityNormal
	}
	if item.DocumentType == "" {
		item.DocumentType = domain.DocumentTypeOther
	}
	if item.CurrentOfficeID == "" {
		item.CurrentOfficeID = item.OwningOfficeID
	}
	if item.LinkedDocumentIDs == nil {
		item.LinkedDocumentIDs = []string{}
	}
}

// applyPatch applies the whitelisted fields onto the item, enforcing the
// forward-only lifecycle and stamping CompletedAt on the first transition
// into a terminal state.
func applyPatch(item *domain.Correspondence, patch dto.CorrespondencePatch) error {
	if patch.Status != nil {
		next := domain.CorrespondenceStatus(*patch.Status)
		if !next.IsValid() {
			return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *patch.Status)
		}
		if !item.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: status cannot move from %q back to %q", apperrors.ErrValidation, item.Status, next)
		}
		if next.IsTerminalForArchive() && item.CompletedAt == nil {
			now := time.Now()
			item.CompletedAt = &now
		}
		item.Status = next
	}
	if patch.Direction != nil {
		d := domain.Direction(*patch.Direction)
		if d != domain.DirectionUpward && d != domain.DirectionDownward {
			return fmt.Errorf("%w: unknown direction %q", apperrors.ErrValidation, *patch.Direction)
		}
		item.Direction = d
	}
	if patch.Priority != nil {
		p := domain.CorrespondencePriority(*patch.Priority)
		switch p {
		case domain.PriorityUrgent, domain.PriorityHigh, domain.PriorityNormal, domain.PriorityLow:
			item.Priority = p
		default:
			return fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, *patch.Priority)
		}
	}
	if patch.ArchiveLevel != nil {
		level := domain.ArchiveLevel(*patch.ArchiveLevel)
		if !level.IsValid() {
			return fmt.Errorf("%w: unknown archive level %q", apperrors.ErrValidation, *patch.ArchiveLevel)
		}
		item.ArchiveLevel = level
	}
	if patch.Subject != nil {
		if *patch.Subject == "" {
			return fmt.Errorf("%w: subject cannot be empty", apperrors.ErrValidation)
		}
		item.Subject = *patch.Subject
	}
	if patch.ReferenceNumber != nil {
		item.ReferenceNumber = *patch.ReferenceNumber
	}
	if patch.CurrentApproverID != nil {
		item.CurrentApproverID = *patch.CurrentApproverID
	}
	if patch.DivisionID != nil {
		item.DivisionID = *patch.DivisionID
	}
	if patch.DepartmentID != nil {
		item.DepartmentID = *patch.DepartmentID
	}
	if patch.LinkedDocumentIDs != nil {
		item.LinkedDocumentIDs = patch.LinkedDocumentIDs
	}
	return nil
}

// validateDistributionTarget checks the recipient ID matching the declared
// recipient type is present.
func validateDistributionTarget(req dto.AddDistributionRequest) error {
	switch domain.RecipientType(req.RecipientType) {
	case domain.RecipientDirectorate:
		if req.DirectorateID == "" {
			return fmt.Errorf("%w: directorate_id is required for directorate recipients", apperrors.ErrValidation)
		}
	case domain.RecipientDivision:
		if req.DivisionID == "" {
			return fmt.Errorf("%w: division_id is required for division recipients", apperrors.ErrValidation)
		}
	case domain.RecipientDepartment:
		if req.DepartmentID == "" {
			return fmt.Errorf("%w: department_id is required for department recipients", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown recipient type %q", apperrors.ErrValidation, req.RecipientType)
	}
	return nil
}

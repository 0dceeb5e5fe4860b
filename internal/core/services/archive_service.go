package services

import (
	"context"
	"errors"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
)

// archiveService implements the ArchiveSvcFacade interface. Visibility is a
// pure evaluation over the correspondence snapshot and the hierarchy; the
// evaluator never writes anything.
type archiveService struct {
	BaseService
	corrSvc portssvc.CorrespondenceReaderSvc
	orgSvc  portssvc.OrganizationSvcFacade
}

// NewArchiveService creates a new archive visibility evaluator
func NewArchiveService(corrSvc portssvc.CorrespondenceReaderSvc, orgSvc portssvc.OrganizationSvcFacade) portssvc.ArchiveSvcFacade {
	return &archiveService{
		corrSvc: corrSvc,
		orgSvc:  orgSvc,
	}
}

// Ensure archiveService implements the ArchiveSvcFacade interface
var _ portssvc.ArchiveSvcFacade = (*archiveService)(nil)

// VisibleArchive returns the completed and archived items the user may see.
// An item is visible when the user's capability set includes the item's
// archive tier and the user holds the position that tier demands:
// department items go to members of the same department, division items
// only to the general manager of the user's own division when it is the
// item's division, directorate items only to the executive director of the
// user's own directorate when it is the item's directorate.
func (s *archiveService) VisibleArchive(ctx context.Context, user domain.User) ([]domain.Correspondence, error) {
	items, err := s.corrSvc.ListCorrespondence(ctx, domain.CorrespondenceFilter{})
	if err != nil {
		return nil, err
	}

	visible := make([]domain.Correspondence, 0)
	for _, item := range items {
		if !item.Status.IsTerminalForArchive() {
			continue
		}
		ok, err := s.visibleTo(ctx, item, user)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

func (s *archiveService) visibleTo(ctx context.Context, item domain.Correspondence, user domain.User) (bool, error) {
	level := item.EffectiveArchiveLevel()
	if !user.MayUseArchiveLevel(level) {
		return false, nil
	}

	switch level {
	case domain.ArchiveLevelDepartment:
		return s.sameDepartment(ctx, item, user)
	case domain.ArchiveLevelDivision:
		return s.isGeneralManager(ctx, item, user)
	case domain.ArchiveLevelDirectorate:
		return s.isExecutiveDirector(ctx, item, user)
	}
	return false, nil
}

// sameDepartment checks the user's primary office sits in the item's department.
func (s *archiveService) sameDepartment(ctx context.Context, item domain.Correspondence, user domain.User) (bool, error) {
	if item.DepartmentID == "" || user.PrimaryOfficeID == "" {
		return false, nil
	}
	office, err := s.orgSvc.GetOfficeByID(ctx, user.PrimaryOfficeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return office.DepartmentID == item.DepartmentID, nil
}

// isGeneralManager checks the user's own division is the item's division and
// the user heads it.
func (s *archiveService) isGeneralManager(ctx context.Context, item domain.Correspondence, user domain.User) (bool, error) {
	divisionID, err := s.resolveDivisionID(ctx, item)
	if err != nil || divisionID == "" {
		return false, err
	}
	userDivisionID, err := s.userDivisionID(ctx, user)
	if err != nil || userDivisionID != divisionID {
		return false, err
	}
	division, err := s.orgSvc.GetDivisionByID(ctx, divisionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return division.GeneralManagerID == user.UserID, nil
}

// isExecutiveDirector checks the user's own directorate sits above the
// item's division and the user leads it.
func (s *archiveService) isExecutiveDirector(ctx context.Context, item domain.Correspondence, user domain.User) (bool, error) {
	divisionID, err := s.resolveDivisionID(ctx, item)
	if err != nil || divisionID == "" {
		return false, err
	}
	directorate, err := s.orgSvc.DirectorateOf(ctx, divisionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	userDirectorateID, err := s.userDirectorateID(ctx, user)
	if err != nil || userDirectorateID != directorate.DirectorateID {
		return false, err
	}
	return directorate.ExecutiveDirectorID == user.UserID, nil
}

// userOffice loads the user's primary office. A missing posting resolves to
// no office rather than an error.
func (s *archiveService) userOffice(ctx context.Context, user domain.User) (*domain.Office, error) {
	if user.PrimaryOfficeID == "" {
		return nil, nil
	}
	office, err := s.orgSvc.GetOfficeByID(ctx, user.PrimaryOfficeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return office, nil
}

// userDivisionID resolves the division the user's primary office sits under.
func (s *archiveService) userDivisionID(ctx context.Context, user domain.User) (string, error) {
	office, err := s.userOffice(ctx, user)
	if err != nil || office == nil {
		return "", err
	}
	return s.officeDivisionID(ctx, office)
}

// userDirectorateID resolves the directorate above the user's primary office.
func (s *archiveService) userDirectorateID(ctx context.Context, user domain.User) (string, error) {
	office, err := s.userOffice(ctx, user)
	if err != nil || office == nil {
		return "", err
	}
	if office.DirectorateID != "" {
		return office.DirectorateID, nil
	}
	divisionID, err := s.officeDivisionID(ctx, office)
	if err != nil || divisionID == "" {
		return "", err
	}
	directorate, err := s.orgSvc.DirectorateOf(ctx, divisionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return directorate.DirectorateID, nil
}

// officeDivisionID resolves an office's division, falling back through its
// department when the office is not attached to a division directly.
func (s *archiveService) officeDivisionID(ctx context.Context, office *domain.Office) (string, error) {
	if office.DivisionID != "" {
		return office.DivisionID, nil
	}
	if office.DepartmentID == "" {
		return "", nil
	}
	division, err := s.orgSvc.DivisionOf(ctx, office.DepartmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return division.DivisionID, nil
}

// resolveDivisionID falls back to the department's parent division when the
// item carries only a department.
func (s *archiveService) resolveDivisionID(ctx context.Context, item domain.Correspondence) (string, error) {
	if item.DivisionID != "" {
		return item.DivisionID, nil
	}
	if item.DepartmentID == "" {
		return "", nil
	}
	division, err := s.orgSvc.DivisionOf(ctx, item.DepartmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return division.DivisionID, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	portsrepo "github.com/npadigital/correspondence_app/internal/core/ports/repositories"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
)

// hierarchySnapshot is one immutable view of the organizational structure.
// It is replaced wholesale on refresh and never mutated in place.
type hierarchySnapshot struct {
	directorates map[string]domain.Directorate
	divisions    map[string]domain.Division
	departments  map[string]domain.Department
	offices      map[string]domain.Office
	memberships  []domain.OfficeMembership
}

// organizationService implements the OrganizationSvcFacade interface over a
// cached hierarchy snapshot. The hierarchy is administered upstream; this
// service only reads and resolves it.
type organizationService struct {
	BaseService
	orgRepo portsrepo.OrganizationRepositoryFacade

	mu       sync.RWMutex
	snapshot *hierarchySnapshot
}

// NewOrganizationService creates a new organization resolver service
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{orgRepo: orgRepo}
}

// Ensure organizationService implements the OrganizationSvcFacade interface
var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// RefreshHierarchy reloads the full organizational snapshot. The new
// snapshot is assembled completely before it replaces the old one.
func (s *organizationService) RefreshHierarchy(ctx context.Context) error {
	directorates, err := s.orgRepo.ListDirectorates(ctx)
	if err != nil {
		return fmt.Errorf("refresh hierarchy: %w", err)
	}
	divisions, err := s.orgRepo.ListDivisions(ctx)
	if err != nil {
		return fmt.Errorf("refresh hierarchy: %w", err)
	}
	departments, err := s.orgRepo.ListDepartments(ctx)
	if err != nil {
		return fmt.Errorf("refresh hierarchy: %w", err)
	}
	offices, err := s.orgRepo.ListOffices(ctx)
	if err != nil {
		return fmt.Errorf("refresh hierarchy: %w", err)
	}
	memberships, err := s.orgRepo.ListOfficeMemberships(ctx)
	if err != nil {
		return fmt.Errorf("refresh hierarchy: %w", err)
	}

	next := &hierarchySnapshot{
		directorates: make(map[string]domain.Directorate, len(directorates)),
		divisions:    make(map[string]domain.Division, len(divisions)),
		departments:  make(map[string]domain.Department, len(departments)),
		offices:      make(map[string]domain.Office, len(offices)),
		memberships:  memberships,
	}
	for _, d := range directorates {
		next.directorates[d.DirectorateID] = d
	}
	for _, d := range divisions {
		next.divisions[d.DivisionID] = d
	}
	for _, d := range departments {
		next.departments[d.DepartmentID] = d
	}
	for _, o := range offices {
		next.offices[o.OfficeID] = o
	}

	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()

	s.LogDebug(ctx, "Hierarchy snapshot refreshed",
		slog.Int("directorates", len(next.directorates)),
		slog.Int("divisions", len(next.divisions)),
		slog.Int("departments", len(next.departments)),
		slog.Int("offices", len(next.offices)))
	return nil
}

func (s *organizationService) Directorates(ctx context.Context) ([]domain.Directorate, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Directorate, 0, len(snap.directorates))
	for _, d := range snap.directorates {
		res = append(res, d)
	}
	return res, nil
}

func (s *organizationService) Divisions(ctx context.Context) ([]domain.Division, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Division, 0, len(snap.divisions))
	for _, d := range snap.divisions {
		res = append(res, d)
	}
	return res, nil
}

func (s *organizationService) Departments(ctx context.Context) ([]domain.Department, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Department, 0, len(snap.departments))
	for _, d := range snap.departments {
		res = append(res, d)
	}
	return res, nil
}

func (s *organizationService) Offices(ctx context.Context) ([]domain.Office, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Office, 0, len(snap.offices))
	for _, o := range snap.offices {
		res = append(res, o)
	}
	return res, nil
}

func (s *organizationService) GetOfficeByID(ctx context.Context, officeID string) (*domain.Office, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	office, ok := snap.offices[officeID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &office, nil
}

func (s *organizationService) GetDivisionByID(ctx context.Context, divisionID string) (*domain.Division, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	division, ok := snap.divisions[divisionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &division, nil
}

func (s *organizationService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	department, ok := snap.departments[departmentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &department, nil
}

func (s *organizationService) DivisionOf(ctx context.Context, departmentID string) (*domain.Division, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	department, ok := snap.departments[departmentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	division, ok := snap.divisions[department.DivisionID]
	if !ok {
		return nil, fmt.Errorf("%w: department %s references unknown division %s",
			apperrors.ErrNotFound, departmentID, department.DivisionID)
	}
	return &division, nil
}

func (s *organizationService) DirectorateOf(ctx context.Context, divisionID string) (*domain.Directorate, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	division, ok := snap.divisions[divisionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	directorate, ok := snap.directorates[division.DirectorateID]
	if !ok {
		return nil, fmt.Errorf("%w: division %s references unknown directorate %s",
			apperrors.ErrNotFound, divisionID, division.DirectorateID)
	}
	return &directorate, nil
}

func (s *organizationService) OfficeMembers(ctx context.Context, officeID string) ([]domain.OfficeMembership, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := snap.offices[officeID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	members := make([]domain.OfficeMembership, 0)
	for _, m := range snap.memberships {
		if m.OfficeID == officeID && m.IsActive {
			members = append(members, m)
		}
	}
	return members, nil
}

// current returns the live snapshot, loading it on first use.
func (s *organizationService) current(ctx context.Context) (*hierarchySnapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}
	if err := s.RefreshHierarchy(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	snap = s.snapshot
	s.mu.RUnlock()
	return snap, nil
}

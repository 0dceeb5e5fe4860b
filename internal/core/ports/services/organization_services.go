package services

import (
	"context"

	"github.com/npadigital/correspondence_app/internal/core/domain"
)

// OrganizationSvcFacade resolves the organizational hierarchy from a cached
// snapshot. The hierarchy is read-only from this engine's point of view.
type OrganizationSvcFacade interface {
	// RefreshHierarchy reloads the organizational snapshot from the store.
	RefreshHierarchy(ctx context.Context) error

	// Directorates returns all directorates in the snapshot.
	Directorates(ctx context.Context) ([]domain.Directorate, error)

	// Divisions returns all divisions in the snapshot.
	Divisions(ctx context.Context) ([]domain.Division, error)

	// Departments returns all departments in the snapshot.
	Departments(ctx context.Context) ([]domain.Department, error)

	// Offices returns all routing offices in the snapshot.
	Offices(ctx context.Context) ([]domain.Office, error)

	// GetOfficeByID resolves one office from the snapshot.
	GetOfficeByID(ctx context.Context, officeID string) (*domain.Office, error)

	// GetDivisionByID resolves one division from the snapshot.
	GetDivisionByID(ctx context.Context, divisionID string) (*domain.Division, error)

	// GetDepartmentByID resolves one department from the snapshot.
	GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// DivisionOf resolves the division a department belongs to.
	DivisionOf(ctx context.Context, departmentID string) (*domain.Division, error)

	// DirectorateOf resolves the directorate a division belongs to.
	DirectorateOf(ctx context.Context, divisionID string) (*domain.Directorate, error)

	// OfficeMembers returns the active postings for an office.
	OfficeMembers(ctx context.Context, officeID string) ([]domain.OfficeMembership, error)
}

package repositories

import (
	"context"

	"github.com/npadigital/correspondence_app/internal/core/domain"
)

// OrganizationReader exposes the organizational snapshot. The hierarchy is
// administered elsewhere; this engine only reads it.
type OrganizationReader interface {
	// ListDirectorates retrieves all directorates.
	ListDirectorates(ctx context.Context) ([]domain.Directorate, error)

	// ListDivisions retrieves all divisions.
	ListDivisions(ctx context.Context) ([]domain.Division, error)

	// ListDepartments retrieves all departments.
	ListDepartments(ctx context.Context) ([]domain.Department, error)

	// ListOffices retrieves all routing offices.
	ListOffices(ctx context.Context) ([]domain.Office, error)

	// ListOfficeMemberships retrieves all office postings.
	ListOfficeMemberships(ctx context.Context) ([]domain.OfficeMembership, error)

	// FindOfficeByID retrieves a specific office.
	FindOfficeByID(ctx context.Context, officeID string) (*domain.Office, error)
}

// OrganizationRepositoryFacade is the organizational read facade.
type OrganizationRepositoryFacade interface {
	OrganizationReader
}

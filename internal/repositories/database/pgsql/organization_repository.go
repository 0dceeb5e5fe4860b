package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	portsrepo "github.com/npadigital/correspondence_app/internal/core/ports/repositories"
	"github.com/npadigital/correspondence_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new read-only repository for the
// organizational hierarchy.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxOrganizationRepository implements the facade
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

func toDomainOffice(m models.Office) domain.Office {
	return domain.Office{
		OfficeID:      m.OfficeID,
		Name:          m.Name,
		Code:          m.Code,
		OfficeType:    domain.OfficeType(m.OfficeType),
		DirectorateID: m.DirectorateID.String,
		DivisionID:    m.DivisionID.String,
		DepartmentID:  m.DepartmentID.String,
		IsActive:      m.IsActive,
	}
}

// ListDirectorates retrieves all directorates.
func (r *PgxOrganizationRepository) ListDirectorates(ctx context.Context) ([]domain.Directorate, error) {
	query := `SELECT directorate_id, name, code, executive_director_id, is_active FROM directorates ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list directorates: %w", err)
	}
	defer rows.Close()

	var directorates []domain.Directorate
	for rows.Next() {
		var m models.Directorate
		if err := rows.Scan(&m.DirectorateID, &m.Name, &m.Code, &m.ExecutiveDirectorID, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan directorate row: %w", err)
		}
		directorates = append(directorates, domain.Directorate{
			DirectorateID:       m.DirectorateID,
			Name:                m.Name,
			Code:                m.Code,
			ExecutiveDirectorID: m.ExecutiveDirectorID.String,
			IsActive:            m.IsActive,
		})
	}
	return directorates, rows.Err()
}

// ListDivisions retrieves all divisions.
func (r *PgxOrganizationRepository) ListDivisions(ctx context.Context) ([]domain.Division, error) {
	query := `SELECT division_id, directorate_id, name, code, general_manager_id, is_active FROM divisions ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list divisions: %w", err)
	}
	defer rows.Close()

	var divisions []domain.Division
	for rows.Next() {
		var m models.Division
		if err := rows.Scan(&m.DivisionID, &m.DirectorateID, &m.Name, &m.Code, &m.GeneralManagerID, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan division row: %w", err)
		}
		divisions = append(divisions, domain.Division{
			DivisionID:       m.DivisionID,
			DirectorateID:    m.DirectorateID,
			Name:             m.Name,
			Code:             m.Code,
			GeneralManagerID: m.GeneralManagerID.String,
			IsActive:         m.IsActive,
		})
	}
	return divisions, rows.Err()
}

// ListDepartments retrieves all departments.
func (r *PgxOrganizationRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	query := `SELECT department_id, division_id, name, code, head_of_department_id, is_active FROM departments ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		var m models.Department
		if err := rows.Scan(&m.DepartmentID, &m.DivisionID, &m.Name, &m.Code, &m.HeadOfDepartmentID, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, domain.Department{
			DepartmentID:       m.DepartmentID,
			DivisionID:         m.DivisionID,
			Name:               m.Name,
			Code:               m.Code,
			HeadOfDepartmentID: m.HeadOfDepartmentID.String,
			IsActive:           m.IsActive,
		})
	}
	return departments, rows.Err()
}

// ListOffices retrieves all routing offices.
func (r *PgxOrganizationRepository) ListOffices(ctx context.Context) ([]domain.Office, error) {
	query := `SELECT office_id, name, code, office_type, directorate_id, division_id, department_id, is_active FROM offices ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}
	defer rows.Close()

	var offices []domain.Office
	for rows.Next() {
		var m models.Office
		if err := rows.Scan(&m.OfficeID, &m.Name, &m.Code, &m.OfficeType, &m.DirectorateID, &m.DivisionID, &m.DepartmentID, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan office row: %w", err)
		}
		offices = append(offices, toDomainOffice(m))
	}
	return offices, rows.Err()
}

// ListOfficeMemberships retrieves all office postings.
func (r *PgxOrganizationRepository) ListOfficeMemberships(ctx context.Context) ([]domain.OfficeMembership, error) {
	query := `SELECT membership_id, office_id, user_id, is_primary, is_active FROM office_memberships;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list office memberships: %w", err)
	}
	defer rows.Close()

	var memberships []domain.OfficeMembership
	for rows.Next() {
		var m models.OfficeMembership
		if err := rows.Scan(&m.MembershipID, &m.OfficeID, &m.UserID, &m.IsPrimary, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan office membership row: %w", err)
		}
		memberships = append(memberships, domain.OfficeMembership{
			MembershipID: m.MembershipID,
			OfficeID:     m.OfficeID,
			UserID:       m.UserID,
			IsPrimary:    m.IsPrimary,
			IsActive:     m.IsActive,
		})
	}
	return memberships, rows.Err()
}

// FindOfficeByID retrieves a specific office.
func (r *PgxOrganizationRepository) FindOfficeByID(ctx context.Context, officeID string) (*domain.Office, error) {
	query := `SELECT office_id, name, code, office_type, directorate_id, division_id, department_id, is_active FROM offices WHERE office_id = $1;`

	var m models.Office
	err := r.Pool.QueryRow(ctx, query, officeID).Scan(
		&m.OfficeID, &m.Name, &m.Code, &m.OfficeType, &m.DirectorateID, &m.DivisionID, &m.DepartmentID, &m.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find office %s: %w", officeID, err)
	}
	office := toDomainOffice(m)
	return &office, nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	portsrepo "github.com/npadigital/correspondence_app/internal/core/ports/repositories"
	"github.com/npadigital/correspondence_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDelegationRepository struct {
	BaseRepository
}

// newPgxDelegationRepository creates a new repository for delegation grants.
func newPgxDelegationRepository(pool *pgxpool.Pool) portsrepo.DelegationRepositoryFacade {
	return &PgxDelegationRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxDelegationRepository implements the facade
var _ portsrepo.DelegationRepositoryFacade = (*PgxDelegationRepository)(nil)

func toDomainDelegation(m models.Delegation) domain.Delegation {
	return domain.Delegation{
		DelegationID:     m.DelegationID,
		CorrespondenceID: m.CorrespondenceID,
		ExecutiveID:      m.ExecutiveID,
		AssistantID:      m.AssistantID,
		AssistantType:    domain.AssistantType(m.AssistantType),
		Status:           domain.DelegationStatus(m.Status),
		Notes:            m.Notes,
		DelegatedAt:      m.DelegatedAt,
		CompletedAt:      fromNullTime(m.CompletedAt),
	}
}

const delegationColumns = `delegation_id, correspondence_id, executive_id, assistant_id, assistant_type, status, notes, delegated_at, completed_at`

func scanDelegation(row pgx.Row) (models.Delegation, error) {
	var m models.Delegation
	err := row.Scan(
		&m.DelegationID,
		&m.CorrespondenceID,
		&m.ExecutiveID,
		&m.AssistantID,
		&m.AssistantType,
		&m.Status,
		&m.Notes,
		&m.DelegatedAt,
		&m.CompletedAt,
	)
	return m, err
}

// SaveDelegation persists a new delegation. A partial unique index on active
// delegations per (correspondence_id, executive_id) backs the single-active
// rule at the store level.
func (r *PgxDelegationRepository) SaveDelegation(ctx context.Context, delegation domain.Delegation) error {
	query := `
		INSERT INTO delegations (` + delegationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		delegation.DelegationID,
		delegation.CorrespondenceID,
		delegation.ExecutiveID,
		delegation.AssistantID,
		string(delegation.AssistantType),
		string(delegation.Status),
		delegation.Notes,
		delegation.DelegatedAt,
		toNullTime(delegation.CompletedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // active-delegation unique violation
				return fmt.Errorf("%w: active delegation exists for correspondence %s", apperrors.ErrDuplicate, delegation.CorrespondenceID)
			case "23503": // FK violation
				return fmt.Errorf("%w: correspondence %s does not exist", apperrors.ErrNotFound, delegation.CorrespondenceID)
			}
		}
		return fmt.Errorf("failed to save delegation %s: %w", delegation.DelegationID, err)
	}
	return nil
}

// FindDelegationByID retrieves a specific delegation.
func (r *PgxDelegationRepository) FindDelegationByID(ctx context.Context, delegationID string) (*domain.Delegation, error) {
	query := `SELECT ` + delegationColumns + ` FROM delegations WHERE delegation_id = $1;`

	m, err := scanDelegation(r.Pool.QueryRow(ctx, query, delegationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find delegation %s: %w", delegationID, err)
	}
	d := toDomainDelegation(m)
	return &d, nil
}

// FindActiveDelegationForExecutive retrieves the active delegation granted by
// an executive on an item, or ErrNotFound.
func (r *PgxDelegationRepository) FindActiveDelegationForExecutive(ctx context.Context, correspondenceID, executiveID string) (*domain.Delegation, error) {
	query := `SELECT ` + delegationColumns + ` FROM delegations WHERE correspondence_id = $1 AND executive_id = $2 AND status = 'active';`

	m, err := scanDelegation(r.Pool.QueryRow(ctx, query, correspondenceID, executiveID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active delegation for executive %s on %s: %w", executiveID, correspondenceID, err)
	}
	d := toDomainDelegation(m)
	return &d, nil
}

// FindActiveDelegationForAssistant retrieves the active delegation
// authorizing an assistant on an item, or ErrNotFound.
func (r *PgxDelegationRepository) FindActiveDelegationForAssistant(ctx context.Context, correspondenceID, assistantID string) (*domain.Delegation, error) {
	query := `SELECT ` + delegationColumns + ` FROM delegations WHERE correspondence_id = $1 AND assistant_id = $2 AND status = 'active';`

	m, err := scanDelegation(r.Pool.QueryRow(ctx, query, correspondenceID, assistantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active delegation for assistant %s on %s: %w", assistantID, correspondenceID, err)
	}
	d := toDomainDelegation(m)
	return &d, nil
}

// ListDelegations retrieves delegations matching the filter, newest first.
func (r *PgxDelegationRepository) ListDelegations(ctx context.Context, filter domain.DelegationFilter) ([]domain.Delegation, error) {
	var conditions []string
	var args []any

	addCondition := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addCondition("correspondence_id", filter.CorrespondenceID)
	addCondition("executive_id", filter.ExecutiveID)
	addCondition("assistant_id", filter.AssistantID)
	addCondition("status", string(filter.Status))

	query := `SELECT ` + delegationColumns + ` FROM delegations`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY delegated_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list delegations: %w", err)
	}
	defer rows.Close()

	var delegations []domain.Delegation
	for rows.Next() {
		m, err := scanDelegation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delegation row: %w", err)
		}
		delegations = append(delegations, toDomainDelegation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delegation rows: %w", err)
	}
	return delegations, nil
}

// UpdateDelegationStatus transitions a delegation's status.
func (r *PgxDelegationRepository) UpdateDelegationStatus(ctx context.Context, delegationID string, status domain.DelegationStatus, completedAt *time.Time) error {
	query := `UPDATE delegations SET status = $2, completed_at = $3 WHERE delegation_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, delegationID, string(status), toNullTime(completedAt))
	if err != nil {
		return fmt.Errorf("failed to update delegation %s status: %w", delegationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

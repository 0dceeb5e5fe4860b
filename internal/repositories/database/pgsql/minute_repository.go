package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	portsrepo "github.com/npadigital/correspondence_app/internal/core/ports/repositories"
	"github.com/npadigital/correspondence_app/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMinuteRepository struct {
	BaseRepository
}

// newPgxMinuteRepository creates a new repository for the minute ledger.
func newPgxMinuteRepository(pool *pgxpool.Pool) portsrepo.MinuteRepositoryFacade {
	return &PgxMinuteRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxMinuteRepository implements the facade
var _ portsrepo.MinuteRepositoryFacade = (*PgxMinuteRepository)(nil)

func toModelMinute(d domain.Minute) models.Minute {
	return models.Minute{
		MinuteID:         d.MinuteID,
		CorrespondenceID: d.CorrespondenceID,
		UserID:           d.UserID,
		UserName:         d.UserName,
		GradeLevel:       d.GradeLevel,
		ActionType:       string(d.ActionType),
		MinuteText:       d.MinuteText,
		Direction:        string(d.Direction),
		StepNumber:       d.StepNumber,
		ActedBySecretary: d.ActedBySecretary,
		ActedByAssistant: d.ActedByAssistant,
		AssistantType:    string(d.AssistantType),
		Mentions:         d.Mentions,
		SignaturePayload: nullString(d.SignaturePayload),
		FromOfficeID:     nullString(d.FromOfficeID),
		ToOfficeID:       nullString(d.ToOfficeID),
		ReadAt:           toNullTime(d.ReadAt),
		Timestamp:        d.Timestamp,
	}
}

func toDomainMinute(m models.Minute) domain.Minute {
	return domain.Minute{
		MinuteID:         m.MinuteID,
		CorrespondenceID: m.CorrespondenceID,
		UserID:           m.UserID,
		UserName:         m.UserName,
		GradeLevel:       m.GradeLevel,
		ActionType:       domain.MinuteActionType(m.ActionType),
		MinuteText:       m.MinuteText,
		Direction:        domain.Direction(m.Direction),
		StepNumber:       m.StepNumber,
		ActedBySecretary: m.ActedBySecretary,
		ActedByAssistant: m.ActedByAssistant,
		AssistantType:    domain.AssistantType(m.AssistantType),
		Mentions:         m.Mentions,
		SignaturePayload: m.SignaturePayload.String,
		FromOfficeID:     m.FromOfficeID.String,
		ToOfficeID:       m.ToOfficeID.String,
		ReadAt:           fromNullTime(m.ReadAt),
		Timestamp:        m.Timestamp,
	}
}

// SaveMinute persists a new ledger entry. The ledger is append-only; there
// is no corresponding update or delete.
func (r *PgxMinuteRepository) SaveMinute(ctx context.Context, minute domain.Minute) error {
	m := toModelMinute(minute)

	query := `
		INSERT INTO minutes (minute_id, correspondence_id, user_id, user_name, grade_level, action_type, minute_text, direction, step_number, acted_by_secretary, acted_by_assistant, assistant_type, mentions, signature_payload, from_office_id, to_office_id, read_at, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MinuteID,
		m.CorrespondenceID,
		m.UserID,
		m.UserName,
		m.GradeLevel,
		m.ActionType,
		m.MinuteText,
		m.Direction,
		m.StepNumber,
		m.ActedBySecretary,
		m.ActedByAssistant,
		m.AssistantType,
		m.Mentions,
		m.SignaturePayload,
		m.FromOfficeID,
		m.ToOfficeID,
		m.ReadAt,
		m.Timestamp,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique (correspondence_id, step_number)
				return fmt.Errorf("%w: step %d already recorded for correspondence %s", apperrors.ErrDuplicate, m.StepNumber, m.CorrespondenceID)
			case "23503": // FK violation
				return fmt.Errorf("%w: correspondence %s does not exist", apperrors.ErrNotFound, m.CorrespondenceID)
			}
		}
		return fmt.Errorf("failed to save minute %s: %w", m.MinuteID, err)
	}
	return nil
}

// ListMinutes retrieves ledger entries matching the filter, ordered by
// step number.
func (r *PgxMinuteRepository) ListMinutes(ctx context.Context, filter domain.MinuteFilter) ([]domain.Minute, error) {
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
	addCondition("user_id", filter.UserID)
	addCondition("action_type", string(filter.ActionType))

	query := `
		SELECT minute_id, correspondence_id, user_id, user_name, grade_level, action_type, minute_text, direction, step_number, acted_by_secretary, acted_by_assistant, assistant_type, mentions, signature_payload, from_office_id, to_office_id, read_at, timestamp
		FROM minutes`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY correspondence_id, step_number ASC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list minutes: %w", err)
	}
	defer rows.Close()

	var minutes []domain.Minute
	for rows.Next() {
		var m models.Minute
		err := rows.Scan(
			&m.MinuteID,
			&m.CorrespondenceID,
			&m.UserID,
			&m.UserName,
			&m.GradeLevel,
			&m.ActionType,
			&m.MinuteText,
			&m.Direction,
			&m.StepNumber,
			&m.ActedBySecretary,
			&m.ActedByAssistant,
			&m.AssistantType,
			&m.Mentions,
			&m.SignaturePayload,
			&m.FromOfficeID,
			&m.ToOfficeID,
			&m.ReadAt,
			&m.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan minute row: %w", err)
		}
		minutes = append(minutes, toDomainMinute(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating minute rows: %w", err)
	}
	return minutes, nil
}

// MaxStepNumber returns the highest step recorded for an item, 0 when the
// item has no minutes.
func (r *PgxMinuteRepository) MaxStepNumber(ctx context.Context, correspondenceID string) (int, error) {
	var maxStep int
	query := `SELECT COALESCE(MAX(step_number), 0) FROM minutes WHERE correspondence_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, correspondenceID).Scan(&maxStep); err != nil {
		return 0, fmt.Errorf("failed to get max step number for %s: %w", correspondenceID, err)
	}
	return maxStep, nil
}

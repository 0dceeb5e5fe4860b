package pgsql

import (
	"context"
	"database/sql"
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

type PgxCorrespondenceRepository struct {
	BaseRepository
}

// newPgxCorrespondenceRepository creates a new repository for correspondence data.
func newPgxCorrespondenceRepository(pool *pgxpool.Pool) portsrepo.CorrespondenceRepositoryFacade {
	return &PgxCorrespondenceRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxCorrespondenceRepository implements the facade
var _ portsrepo.CorrespondenceRepositoryFacade = (*PgxCorrespondenceRepository)(nil)

// Helper to convert domain.Correspondence to models.Correspondence for DB storage
func toModelCorrespondence(d domain.Correspondence) models.Correspondence {
	return models.Correspondence{
		CorrespondenceID:  d.CorrespondenceID,
		ReferenceNumber:   d.ReferenceNumber,
		Subject:           d.Subject,
		Summary:           d.Summary,
		SenderName:        d.SenderName,
		SenderOrg:         d.SenderOrg,
		Source:            string(d.Source),
		Priority:          string(d.Priority),
		Direction:         string(d.Direction),
		DocumentType:      string(d.DocumentType),
		Status:            string(d.Status),
		ArchiveLevel:      string(d.ArchiveLevel),
		OwningOfficeID:    nullString(d.OwningOfficeID),
		CurrentOfficeID:   nullString(d.CurrentOfficeID),
		CurrentApproverID: nullString(d.CurrentApproverID),
		DivisionID:        nullString(d.DivisionID),
		DepartmentID:      nullString(d.DepartmentID),
		LinkedDocumentIDs: d.LinkedDocumentIDs,
		CompletedAt:       toNullTime(d.CompletedAt),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Correspondence from DB to domain.Correspondence
func toDomainCorrespondence(m models.Correspondence) domain.Correspondence {
	return domain.Correspondence{
		CorrespondenceID:  m.CorrespondenceID,
		ReferenceNumber:   m.ReferenceNumber,
		Subject:           m.Subject,
		Summary:           m.Summary,
		SenderName:        m.SenderName,
		SenderOrg:         m.SenderOrg,
		Source:            domain.CorrespondenceSource(m.Source),
		Priority:          domain.CorrespondencePriority(m.Priority),
		Direction:         domain.Direction(m.Direction),
		DocumentType:      domain.DocumentType(m.DocumentType),
		Status:            domain.CorrespondenceStatus(m.Status),
		ArchiveLevel:      domain.ArchiveLevel(m.ArchiveLevel),
		OwningOfficeID:    m.OwningOfficeID.String,
		CurrentOfficeID:   m.CurrentOfficeID.String,
		CurrentApproverID: m.CurrentApproverID.String,
		DivisionID:        m.DivisionID.String,
		DepartmentID:      m.DepartmentID.String,
		LinkedDocumentIDs: m.LinkedDocumentIDs,
		CompletedAt:       fromNullTime(m.CompletedAt),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const correspondenceColumns = `correspondence_id, reference_number, subject, summary, sender_name, sender_organization, source, priority, direction, document_type, status, archive_level, owning_office_id, current_office_id, current_approver_id, division_id, department_id, linked_document_ids, completed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanCorrespondence(row pgx.Row) (models.Correspondence, error) {
	var m models.Correspondence
	err := row.Scan(
		&m.CorrespondenceID,
		&m.ReferenceNumber,
		&m.Subject,
		&m.Summary,
		&m.SenderName,
		&m.SenderOrg,
		&m.Source,
		&m.Priority,
		&m.Direction,
		&m.DocumentType,
		&m.Status,
		&m.ArchiveLevel,
		&m.OwningOfficeID,
		&m.CurrentOfficeID,
		&m.CurrentApproverID,
		&m.DivisionID,
		&m.DepartmentID,
		&m.LinkedDocumentIDs,
		&m.CompletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCorrespondence inserts a new correspondence item.
func (r *PgxCorrespondenceRepository) SaveCorrespondence(ctx context.Context, c domain.Correspondence) error {
	m := toModelCorrespondence(c)

	query := `
		INSERT INTO correspondence (` + correspondenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CorrespondenceID,
		m.ReferenceNumber,
		m.Subject,
		m.Summary,
		m.SenderName,
		m.SenderOrg,
		m.Source,
		m.Priority,
		m.Direction,
		m.DocumentType,
		m.Status,
		m.ArchiveLevel,
		m.OwningOfficeID,
		m.CurrentOfficeID,
		m.CurrentApproverID,
		m.DivisionID,
		m.DepartmentID,
		m.LinkedDocumentIDs,
		m.CompletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: correspondence with reference %s already exists", apperrors.ErrDuplicate, m.ReferenceNumber)
		}
		return fmt.Errorf("failed to save correspondence %s: %w", m.CorrespondenceID, wrapStoreError(err))
	}
	return nil
}

// UpdateCorrespondence updates the mutable columns of an item.
func (r *PgxCorrespondenceRepository) UpdateCorrespondence(ctx context.Context, c domain.Correspondence) error {
	m := toModelCorrespondence(c)

	query := `
		UPDATE correspondence
		SET reference_number = $2, subject = $3, summary = $4, source = $5, priority = $6,
			direction = $7, document_type = $8, status = $9, archive_level = $10,
			owning_office_id = $11, current_office_id = $12, current_approver_id = $13,
			division_id = $14, department_id = $15, linked_document_ids = $16,
			completed_at = $17, last_updated_at = $18, last_updated_by = $19
		WHERE correspondence_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CorrespondenceID,
		m.ReferenceNumber,
		m.Subject,
		m.Summary,
		m.Source,
		m.Priority,
		m.Direction,
		m.DocumentType,
		m.Status,
		m.ArchiveLevel,
		m.OwningOfficeID,
		m.CurrentOfficeID,
		m.CurrentApproverID,
		m.DivisionID,
		m.DepartmentID,
		m.LinkedDocumentIDs,
		m.CompletedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update correspondence %s: %w", m.CorrespondenceID, wrapStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRoutingWithAudit applies the routing triple and inserts the audit row
// in a single transaction so a committed reassignment always has its record.
func (r *PgxCorrespondenceRepository) UpdateRoutingWithAudit(ctx context.Context, c domain.Correspondence, audit domain.ReassignmentAudit) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction commits

	updateQuery := `
		UPDATE correspondence
		SET owning_office_id = $2, current_office_id = $3, current_approver_id = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE correspondence_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		c.CorrespondenceID,
		nullString(c.OwningOfficeID),
		nullString(c.CurrentOfficeID),
		nullString(c.CurrentApproverID),
		c.LastUpdatedAt,
		c.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update routing for %s: %w", c.CorrespondenceID, wrapStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	auditQuery := `
		INSERT INTO reassignment_audits (audit_id, correspondence_id, actor_id, reason,
			prev_owning_office_id, prev_current_office_id, prev_approver_id,
			new_owning_office_id, new_current_office_id, new_approver_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, auditQuery,
		audit.AuditID,
		audit.CorrespondenceID,
		audit.ActorID,
		audit.Reason,
		audit.PreviousValues.OwningOfficeID,
		audit.PreviousValues.CurrentOfficeID,
		audit.PreviousValues.CurrentApproverID,
		audit.NewValues.OwningOfficeID,
		audit.NewValues.CurrentOfficeID,
		audit.NewValues.CurrentApproverID,
		audit.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reassignment audit for %s: %w", c.CorrespondenceID, err)
	}

	return r.Commit(ctx, tx)
}

// FindCorrespondenceByID retrieves an item with its distribution list and
// attachment metadata.
func (r *PgxCorrespondenceRepository) FindCorrespondenceByID(ctx context.Context, correspondenceID string) (*domain.Correspondence, error) {
	query := `SELECT ` + correspondenceColumns + ` FROM correspondence WHERE correspondence_id = $1;`

	m, err := scanCorrespondence(r.Pool.QueryRow(ctx, query, correspondenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find correspondence %s: %w", correspondenceID, err)
	}

	item := toDomainCorrespondence(m)
	if err := r.loadDistribution(ctx, &item); err != nil {
		return nil, err
	}
	if err := r.loadAttachments(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListCorrespondence retrieves items matching the filter, newest first.
// Distribution and attachments are not loaded for list queries.
func (r *PgxCorrespondenceRepository) ListCorrespondence(ctx context.Context, filter domain.CorrespondenceFilter) ([]domain.Correspondence, error) {
	var conditions []string
	var args []any

	addCondition := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addCondition("status", string(filter.Status))
	addCondition("priority", string(filter.Priority))
	addCondition("source", string(filter.Source))
	addCondition("direction", string(filter.Direction))
	addCondition("division_id", filter.DivisionID)
	addCondition("department_id", filter.DepartmentID)
	addCondition("COALESCE(current_office_id, owning_office_id)", filter.CurrentOfficeID)

	query := `SELECT ` + correspondenceColumns + ` FROM correspondence`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list correspondence: %w", err)
	}
	defer rows.Close()

	var items []domain.Correspondence
	for rows.Next() {
		m, err := scanCorrespondence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correspondence row: %w", err)
		}
		items = append(items, toDomainCorrespondence(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating correspondence rows: %w", err)
	}
	return items, nil
}

// CountCorrespondence returns the total item count.
func (r *PgxCorrespondenceRepository) CountCorrespondence(ctx context.Context) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM correspondence;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count correspondence: %w", err)
	}
	return count, nil
}

// SaveDistribution appends one distribution list entry.
func (r *PgxCorrespondenceRepository) SaveDistribution(ctx context.Context, d domain.Distribution) error {
	query := `
		INSERT INTO correspondence_distribution (distribution_id, correspondence_id, recipient_type, directorate_id, division_id, department_id, purpose, added_by_id, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		d.DistributionID,
		d.CorrespondenceID,
		string(d.RecipientType),
		nullString(d.DirectorateID),
		nullString(d.DivisionID),
		nullString(d.DepartmentID),
		string(d.Purpose),
		d.AddedByID,
		d.AddedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation
			return fmt.Errorf("%w: correspondence %s does not exist", apperrors.ErrNotFound, d.CorrespondenceID)
		}
		return fmt.Errorf("failed to save distribution entry %s: %w", d.DistributionID, err)
	}
	return nil
}

// ListReassignmentAudits retrieves the audit trail for one item, oldest first.
func (r *PgxCorrespondenceRepository) ListReassignmentAudits(ctx context.Context, correspondenceID string) ([]domain.ReassignmentAudit, error) {
	query := `
		SELECT audit_id, correspondence_id, actor_id, reason,
			prev_owning_office_id, prev_current_office_id, prev_approver_id,
			new_owning_office_id, new_current_office_id, new_approver_id, timestamp
		FROM reassignment_audits
		WHERE correspondence_id = $1
		ORDER BY timestamp ASC;
	`
	rows, err := r.Pool.Query(ctx, query, correspondenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reassignment audits for %s: %w", correspondenceID, err)
	}
	defer rows.Close()

	var audits []domain.ReassignmentAudit
	for rows.Next() {
		var m models.ReassignmentAudit
		err := rows.Scan(
			&m.AuditID,
			&m.CorrespondenceID,
			&m.ActorID,
			&m.Reason,
			&m.PrevOwningOffice,
			&m.PrevCurrentOffice,
			&m.PrevApprover,
			&m.NewOwningOffice,
			&m.NewCurrentOffice,
			&m.NewApprover,
			&m.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reassignment audit row: %w", err)
		}
		audits = append(audits, domain.ReassignmentAudit{
			AuditID:          m.AuditID,
			CorrespondenceID: m.CorrespondenceID,
			ActorID:          m.ActorID,
			Reason:           m.Reason,
			PreviousValues: domain.RoutingSnapshot{
				OwningOfficeID:    m.PrevOwningOffice,
				CurrentOfficeID:   m.PrevCurrentOffice,
				CurrentApproverID: m.PrevApprover,
			},
			NewValues: domain.RoutingSnapshot{
				OwningOfficeID:    m.NewOwningOffice,
				CurrentOfficeID:   m.NewCurrentOffice,
				CurrentApproverID: m.NewApprover,
			},
			Timestamp: m.Timestamp,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reassignment audit rows: %w", err)
	}
	return audits, nil
}

func (r *PgxCorrespondenceRepository) loadDistribution(ctx context.Context, item *domain.Correspondence) error {
	query := `
		SELECT distribution_id, correspondence_id, recipient_type, directorate_id, division_id, department_id, purpose, added_by_id, added_at
		FROM correspondence_distribution
		WHERE correspondence_id = $1
		ORDER BY added_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, item.CorrespondenceID)
	if err != nil {
		return fmt.Errorf("failed to load distribution for %s: %w", item.CorrespondenceID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Distribution
		err := rows.Scan(
			&m.DistributionID,
			&m.CorrespondenceID,
			&m.RecipientType,
			&m.DirectorateID,
			&m.DivisionID,
			&m.DepartmentID,
			&m.Purpose,
			&m.AddedByID,
			&m.AddedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan distribution row: %w", err)
		}
		item.Distribution = append(item.Distribution, domain.Distribution{
			DistributionID:   m.DistributionID,
			CorrespondenceID: m.CorrespondenceID,
			RecipientType:    domain.RecipientType(m.RecipientType),
			DirectorateID:    m.DirectorateID.String,
			DivisionID:       m.DivisionID.String,
			DepartmentID:     m.DepartmentID.String,
			Purpose:          domain.DistributionPurpose(m.Purpose),
			AddedByID:        m.AddedByID,
			AddedAt:          m.AddedAt,
		})
	}
	return rows.Err()
}

func (r *PgxCorrespondenceRepository) loadAttachments(ctx context.Context, item *domain.Correspondence) error {
	query := `
		SELECT attachment_id, correspondence_id, file_name, file_type, file_size, file_url, uploaded_at
		FROM correspondence_attachments
		WHERE correspondence_id = $1
		ORDER BY uploaded_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, item.CorrespondenceID)
	if err != nil {
		return fmt.Errorf("failed to load attachments for %s: %w", item.CorrespondenceID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Attachment
		err := rows.Scan(
			&m.AttachmentID,
			&m.CorrespondenceID,
			&m.FileName,
			&m.FileType,
			&m.FileSize,
			&m.FileURL,
			&m.UploadedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan attachment row: %w", err)
		}
		item.Attachments = append(item.Attachments, domain.Attachment{
			AttachmentID:     m.AttachmentID,
			CorrespondenceID: m.CorrespondenceID,
			FileName:         m.FileName,
			FileType:         m.FileType,
			FileSize:         m.FileSize,
			FileURL:          m.FileURL,
			UploadedAt:       m.UploadedAt,
		})
	}
	return rows.Err()
}

// toNullTime converts an optional time pointer to its sql representation.
func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// fromNullTime converts a sql nullable time back to a pointer.
func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}

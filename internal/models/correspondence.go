package models

import (
	"database/sql"
	"time"
)

// Correspondence is the DB representation of a correspondence item.
type Correspondence struct {
	CorrespondenceID string `db:"correspondence_id"`
	ReferenceNumber  string `db:"reference_number"`
	Subject          string `db:"subject"`
	Summary          string `db:"summary"`
	SenderName       string `db:"sender_name"`
	SenderOrg        string `db:"sender_organization"`
	Source           string `db:"source"`
	Priority         string `db:"priority"`
	Direction        string `db:"direction"`
	DocumentType     string `db:"document_type"`
	Status           string `db:"status"`
	ArchiveLevel     string `db:"archive_level"`

	OwningOfficeID    sql.NullString `db:"owning_office_id"`
	CurrentOfficeID   sql.NullString `db:"current_office_id"`
	CurrentApproverID sql.NullString `db:"current_approver_id"`
	DivisionID        sql.NullString `db:"division_id"`
	DepartmentID      sql.NullString `db:"department_id"`

	LinkedDocumentIDs []string     `db:"linked_document_ids"`
	CompletedAt       sql.NullTime `db:"completed_at"`
	AuditFields
}

// Distribution is the DB representation of a distribution list entry.
type Distribution struct {
	DistributionID   string         `db:"distribution_id"`
	CorrespondenceID string         `db:"correspondence_id"`
	RecipientType    string         `db:"recipient_type"`
	DirectorateID    sql.NullString `db:"directorate_id"`
	DivisionID       sql.NullString `db:"division_id"`
	DepartmentID     sql.NullString `db:"department_id"`
	Purpose          string         `db:"purpose"`
	AddedByID        string         `db:"added_by_id"`
	AddedAt          time.Time      `db:"added_at"`
}

// Attachment is the DB representation of attachment metadata.
type Attachment struct {
	AttachmentID     string    `db:"attachment_id"`
	CorrespondenceID string    `db:"correspondence_id"`
	FileName         string    `db:"file_name"`
	FileType         string    `db:"file_type"`
	FileSize         int64     `db:"file_size"`
	FileURL          string    `db:"file_url"`
	UploadedAt       time.Time `db:"uploaded_at"`
}

// ReassignmentAudit is the DB representation of a committed reassignment.
type ReassignmentAudit struct {
	AuditID           string    `db:"audit_id"`
	CorrespondenceID  string    `db:"correspondence_id"`
	ActorID           string    `db:"actor_id"`
	Reason            string    `db:"reason"`
	PrevOwningOffice  string    `db:"prev_owning_office_id"`
	PrevCurrentOffice string    `db:"prev_current_office_id"`
	PrevApprover      string    `db:"prev_approver_id"`
	NewOwningOffice   string    `db:"new_owning_office_id"`
	NewCurrentOffice  string    `db:"new_current_office_id"`
	NewApprover       string    `db:"new_approver_id"`
	Timestamp         time.Time `db:"timestamp"`
}

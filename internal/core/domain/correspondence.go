package domain

import "time"

// CorrespondenceStatus is the lifecycle state of a correspondence item.
// Progression is strictly forward: pending -> in-progress -> completed -> archived.
type CorrespondenceStatus string

const (
	StatusPending    CorrespondenceStatus = "pending"
	StatusInProgress CorrespondenceStatus = "in-progress"
	StatusCompleted  CorrespondenceStatus = "completed"
	StatusArchived   CorrespondenceStatus = "archived"
)

// statusRank orders the lifecycle states for forward-only checks.
var statusRank = map[CorrespondenceStatus]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusCompleted:  2,
	StatusArchived:   3,
}

// IsValid reports whether s is one of the known lifecycle states.
func (s CorrespondenceStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next keeps the lifecycle
// moving forward. Staying in the same state is allowed.
func (s CorrespondenceStatus) CanTransitionTo(next CorrespondenceStatus) bool {
	from, okFrom := statusRank[s]
	to, okTo := statusRank[next]
	return okFrom && okTo && to >= from
}

// IsTerminalForArchive reports whether items in this state are candidates for
// archive visibility evaluation.
func (s CorrespondenceStatus) IsTerminalForArchive() bool {
	return s == StatusCompleted || s == StatusArchived
}

// CorrespondenceSource distinguishes internally raised items from external mail.
type CorrespondenceSource string

const (
	SourceInternal CorrespondenceSource = "internal"
	SourceExternal CorrespondenceSource = "external"
)

// CorrespondencePriority follows the registry's four-level scale.
type CorrespondencePriority string

const (
	PriorityUrgent CorrespondencePriority = "urgent"
	PriorityHigh   CorrespondencePriority = "high"
	PriorityNormal CorrespondencePriority = "normal"
	PriorityLow    CorrespondencePriority = "low"
)

// Direction records whether an item is moving up or down the hierarchy.
type Direction string

const (
	DirectionUpward   Direction = "upward"
	DirectionDownward Direction = "downward"
)

// ArchiveLevel is the organizational tier that gates visibility of a
// completed or archived item.
type ArchiveLevel string

const (
	ArchiveLevelDepartment  ArchiveLevel = "department"
	ArchiveLevelDivision    ArchiveLevel = "division"
	ArchiveLevelDirectorate ArchiveLevel = "directorate"
)

// IsValid reports whether l is a known archive tier.
func (l ArchiveLevel) IsValid() bool {
	switch l {
	case ArchiveLevelDepartment, ArchiveLevelDivision, ArchiveLevelDirectorate:
		return true
	}
	return false
}

// DocumentType classifies the correspondence document.
type DocumentType string

const (
	DocumentTypeLetter    DocumentType = "letter"
	DocumentTypeRequest   DocumentType = "request"
	DocumentTypeComplaint DocumentType = "complaint"
	DocumentTypeInquiry   DocumentType = "inquiry"
	DocumentTypeReport    DocumentType = "report"
	DocumentTypeDirective DocumentType = "directive"
	DocumentTypeOther     DocumentType = "other"
)

// Correspondence is a single piece of correspondence moving between offices.
type Correspondence struct {
	CorrespondenceID string                 `json:"correspondenceID"`
	ReferenceNumber  string                 `json:"referenceNumber"`
	Subject          string                 `json:"subject"`
	Summary          string                 `json:"summary"`
	SenderName       string                 `json:"senderName"`
	SenderOrg        string                 `json:"senderOrganization"`
	Source           CorrespondenceSource   `json:"source"`
	Priority         CorrespondencePriority `json:"priority"`
	Direction        Direction              `json:"direction"`
	DocumentType     DocumentType           `json:"documentType"`
	Status           CorrespondenceStatus   `json:"status"`
	ArchiveLevel     ArchiveLevel           `json:"archiveLevel"` // empty until completed/archived

	// Routing triple. CurrentOfficeID defaults to OwningOfficeID when unset.
	OwningOfficeID    string `json:"owningOfficeID"`
	CurrentOfficeID   string `json:"currentOfficeID"`
	CurrentApproverID string `json:"currentApproverID"`

	DivisionID   string `json:"divisionID"`
	DepartmentID string `json:"departmentID"`

	LinkedDocumentIDs []string       `json:"linkedDocumentIDs"`
	Distribution      []Distribution `json:"distribution"`
	Attachments       []Attachment   `json:"attachments"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
	AuditFields
}

// EffectiveCurrentOfficeID resolves the office queue the item currently sits
// in, falling back to the owning office when never explicitly set.
func (c Correspondence) EffectiveCurrentOfficeID() string {
	if c.CurrentOfficeID != "" {
		return c.CurrentOfficeID
	}
	return c.OwningOfficeID
}

// EffectiveArchiveLevel resolves the tier gating archive visibility,
// defaulting to the department tier when the item never had one assigned.
func (c Correspondence) EffectiveArchiveLevel() ArchiveLevel {
	if c.ArchiveLevel != "" {
		return c.ArchiveLevel
	}
	return ArchiveLevelDepartment
}

// DistributionPurpose says why a recipient was put on the list.
type DistributionPurpose string

const (
	PurposeInformation DistributionPurpose = "information"
	PurposeAction      DistributionPurpose = "action"
	PurposeComment     DistributionPurpose = "comment"
)

// RecipientType is the organizational tier of a distribution recipient.
type RecipientType string

const (
	RecipientDirectorate RecipientType = "directorate"
	RecipientDivision    RecipientType = "division"
	RecipientDepartment  RecipientType = "department"
)

// Distribution is one recipient entry on a correspondence distribution list.
type Distribution struct {
	DistributionID   string              `json:"distributionID"`
	CorrespondenceID string              `json:"correspondenceID"`
	RecipientType    RecipientType       `json:"recipientType"`
	DirectorateID    string              `json:"directorateID,omitempty"`
	DivisionID       string              `json:"divisionID,omitempty"`
	DepartmentID     string              `json:"departmentID,omitempty"`
	Purpose          DistributionPurpose `json:"purpose"`
	AddedByID        string              `json:"addedByID"`
	AddedAt          time.Time           `json:"addedAt"`
}

// Attachment is file metadata attached to a correspondence item. Upload and
// storage are handled elsewhere; the engine only tracks the metadata.
type Attachment struct {
	AttachmentID     string    `json:"attachmentID"`
	CorrespondenceID string    `json:"correspondenceID"`
	FileName         string    `json:"fileName"`
	FileType         string    `json:"fileType"`
	FileSize         int64     `json:"fileSize"` // bytes
	FileURL          string    `json:"fileURL"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

// ReassignmentAudit records one committed administrative reassignment.
type ReassignmentAudit struct {
	AuditID          string            `json:"auditID"`
	CorrespondenceID string            `json:"correspondenceID"`
	ActorID          string            `json:"actorID"`
	Reason           string            `json:"reason"`
	PreviousValues   RoutingSnapshot   `json:"previousValues"`
	NewValues        RoutingSnapshot   `json:"newValues"`
	Timestamp        time.Time         `json:"timestamp"`
}

// RoutingSnapshot captures the routing triple at a point in time.
type RoutingSnapshot struct {
	OwningOfficeID    string `json:"owningOfficeID"`
	CurrentOfficeID   string `json:"currentOfficeID"`
	CurrentApproverID string `json:"currentApproverID"`
}

// RoutingSnapshotOf captures an item's current routing triple, with the
// current-office default applied.
func RoutingSnapshotOf(c Correspondence) RoutingSnapshot {
	return RoutingSnapshot{
		OwningOfficeID:    c.OwningOfficeID,
		CurrentOfficeID:   c.EffectiveCurrentOfficeID(),
		CurrentApproverID: c.CurrentApproverID,
	}
}

// ReassignmentChange is the requested administrative reassignment. Nil
// pointers mean "keep the current value".
type ReassignmentChange struct {
	OwningOfficeID    *string
	CurrentOfficeID   *string
	CurrentApproverID *string
	Reason            string
}

// ReassignmentPreview is the validated before/after diff shown to the caller
// before an explicit commit.
type ReassignmentPreview struct {
	CorrespondenceID string
	Previous         RoutingSnapshot
	Proposed         RoutingSnapshot
}

// CorrespondenceFilter narrows list queries. Zero values mean "no filter".
type CorrespondenceFilter struct {
	Status          CorrespondenceStatus
	Priority        CorrespondencePriority
	Source          CorrespondenceSource
	Direction       Direction
	DivisionID      string
	DepartmentID    string
	CurrentOfficeID string
}

// Matches reports whether c satisfies every set filter field.
func (f CorrespondenceFilter) Matches(c Correspondence) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Priority != "" && c.Priority != f.Priority {
		return false
	}
	if f.Source != "" && c.Source != f.Source {
		return false
	}
	if f.Direction != "" && c.Direction != f.Direction {
		return false
	}
	if f.DivisionID != "" && c.DivisionID != f.DivisionID {
		return false
	}
	if f.DepartmentID != "" && c.DepartmentID != f.DepartmentID {
		return false
	}
	if f.CurrentOfficeID != "" && c.EffectiveCurrentOfficeID() != f.CurrentOfficeID {
		return false
	}
	return true
}

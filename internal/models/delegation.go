package models

import (
	"database/sql"
	"time"
)

// Delegation is the DB representation of a delegation grant.
type Delegation struct {
	DelegationID     string       `db:"delegation_id"`
	CorrespondenceID string       `db:"correspondence_id"`
	ExecutiveID      string       `db:"executive_id"`
	AssistantID      string       `db:"assistant_id"`
	AssistantType    string       `db:"assistant_type"`
	Status           string       `db:"status"`
	Notes            string       `db:"notes"`
	DelegatedAt      time.Time    `db:"delegated_at"`
	CompletedAt      sql.NullTime `db:"completed_at"`
}

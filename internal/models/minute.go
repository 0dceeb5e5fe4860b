package models

import (
	"database/sql"
	"time"
)

// Minute is the DB representation of a workflow minute.
type Minute struct {
	MinuteID         string         `db:"minute_id"`
	CorrespondenceID string         `db:"correspondence_id"`
	UserID           string         `db:"user_id"`
	UserName         string         `db:"user_name"`
	GradeLevel       string         `db:"grade_level"`
	ActionType       string         `db:"action_type"`
	MinuteText       string         `db:"minute_text"`
	Direction        string         `db:"direction"`
	StepNumber       int            `db:"step_number"`
	ActedBySecretary bool           `db:"acted_by_secretary"`
	ActedByAssistant bool           `db:"acted_by_assistant"`
	AssistantType    string         `db:"assistant_type"`
	Mentions         []string       `db:"mentions"`
	SignaturePayload sql.NullString `db:"signature_payload"`
	FromOfficeID     sql.NullString `db:"from_office_id"`
	ToOfficeID       sql.NullString `db:"to_office_id"`
	ReadAt           sql.NullTime   `db:"read_at"`
	Timestamp        time.Time      `db:"timestamp"`
}

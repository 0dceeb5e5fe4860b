package domain

import "time"

// MinuteActionType is the kind of action a minute records.
type MinuteActionType string

const (
	ActionMinute  MinuteActionType = "minute"
	ActionApprove MinuteActionType = "approve"
	ActionReturn  MinuteActionType = "return"
	ActionForward MinuteActionType = "forward"
)

// IsValid reports whether a is a known minute action.
func (a MinuteActionType) IsValid() bool {
	switch a {
	case ActionMinute, ActionApprove, ActionReturn, ActionForward:
		return true
	}
	return false
}

// AssistantType identifies which kind of assistant acted under delegation.
type AssistantType string

const (
	AssistantPersonal  AssistantType = "PA"
	AssistantTechnical AssistantType = "TA"
)

// Minute is one append-only entry in a correspondence workflow history.
// Minutes are never updated or deleted once created; the ledger is the
// source of truth for what happened to an item.
type Minute struct {
	MinuteID         string           `json:"minuteID"`
	CorrespondenceID string           `json:"correspondenceID"`
	UserID           string           `json:"userID"`
	UserName         string           `json:"userName"`  // display snapshot at append time
	GradeLevel       string           `json:"gradeLevel"` // role snapshot at append time
	ActionType       MinuteActionType `json:"actionType"`
	MinuteText       string           `json:"minuteText"`
	Direction        Direction        `json:"direction"`
	StepNumber       int              `json:"stepNumber"` // strictly increasing per correspondence, from 1
	ActedBySecretary bool             `json:"actedBySecretary"`
	ActedByAssistant bool             `json:"actedByAssistant"`
	AssistantType    AssistantType    `json:"assistantType,omitempty"`
	Mentions         []string         `json:"mentions"` // mentioned user IDs
	SignaturePayload string           `json:"signaturePayload,omitempty"`
	FromOfficeID     string           `json:"fromOfficeID,omitempty"`
	ToOfficeID       string           `json:"toOfficeID,omitempty"`
	ReadAt           *time.Time       `json:"readAt,omitempty"`
	Timestamp        time.Time        `json:"timestamp"`
}

// Delegated reports whether this minute was recorded on someone's behalf.
func (m Minute) Delegated() bool {
	return m.ActedBySecretary || m.ActedByAssistant
}

// MinuteFilter narrows ledger queries. Zero values mean "no filter".
type MinuteFilter struct {
	CorrespondenceID string
	UserID           string
	ActionType       MinuteActionType
}

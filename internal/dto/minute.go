package dto

import (
	"time"

	"github.com/npadigital/correspondence_app/internal/core/domain"
)

// CreateMinuteRequest appends one action to a correspondence workflow
// history. step_number is never accepted from the caller; the ledger
// computes it.
type CreateMinuteRequest struct {
	CorrespondenceID string   `json:"correspondence" binding:"required"`
	ActionType       string   `json:"action_type" binding:"required,oneof=minute approve return forward"`
	MinuteText       string   `json:"minute_text" binding:"required"`
	Direction        string   `json:"direction" binding:"omitempty,oneof=upward downward"`
	ActedBySecretary bool     `json:"acted_by_secretary"`
	ActedByAssistant bool     `json:"acted_by_assistant"`
	AssistantType    string   `json:"assistant_type" binding:"omitempty,oneof=PA TA"`
	Mentions         []string `json:"mentions"`
	SignaturePayload string   `json:"signature_payload"`
	FromOfficeID     string   `json:"from_office_id"`
	ToOfficeID       string   `json:"to_office_id"`
}

// MinuteResponse is one ledger entry on the wire.
type MinuteResponse struct {
	ID               string     `json:"id"`
	CorrespondenceID string     `json:"correspondence"`
	UserID           string     `json:"user_id"`
	UserName         string     `json:"user_name"`
	GradeLevel       string     `json:"grade_level"`
	ActionType       string     `json:"action_type"`
	MinuteText       string     `json:"minute_text"`
	Direction        string     `json:"direction"`
	StepNumber       int        `json:"step_number"`
	ActedBySecretary bool       `json:"acted_by_secretary"`
	ActedByAssistant bool       `json:"acted_by_assistant"`
	AssistantType    string     `json:"assistant_type,omitempty"`
	Mentions         []string   `json:"mentions"`
	SignaturePayload string     `json:"signature_payload,omitempty"`
	FromOfficeID     string     `json:"from_office_id,omitempty"`
	ToOfficeID       string     `json:"to_office_id,omitempty"`
	ReadAt           *time.Time `json:"read_at,omitempty"`
	Timestamp        time.Time  `json:"timestamp"`
}

// ListMinutesParams filters the minutes listing.
type ListMinutesParams struct {
	CorrespondenceID string `form:"correspondence"`
	UserID           string `form:"user_id"`
	ActionType       string `form:"action_type"`
}

// ToMinuteResponse converts a domain minute to its wire representation.
func ToMinuteResponse(m *domain.Minute) MinuteResponse {
	resp := MinuteResponse{
		ID:               m.MinuteID,
		CorrespondenceID: m.CorrespondenceID,
		UserID:           m.UserID,
		UserName:         m.UserName,
		GradeLevel:       m.GradeLevel,
		ActionType:       string(m.ActionType),
		MinuteText:       m.MinuteText,
		Direction:        string(m.Direction),
		StepNumber:       m.StepNumber,
		ActedBySecretary: m.ActedBySecretary,
		ActedByAssistant: m.ActedByAssistant,
		AssistantType:    string(m.AssistantType),
		Mentions:         m.Mentions,
		SignaturePayload: m.SignaturePayload,
		FromOfficeID:     m.FromOfficeID,
		ToOfficeID:       m.ToOfficeID,
		ReadAt:           m.ReadAt,
		Timestamp:        m.Timestamp,
	}
	if resp.Mentions == nil {
		resp.Mentions = []string{}
	}
	return resp
}

// ToListMinuteResponse converts a slice of domain minutes.
func ToListMinuteResponse(minutes []domain.Minute) []MinuteResponse {
	res := make([]MinuteResponse, len(minutes))
	for i := range minutes {
		res[i] = ToMinuteResponse(&minutes[i])
	}
	return res
}

// ToDomainDraft converts the request to a domain minute draft. Identity,
// step number, actor snapshot and timestamp are assigned by the ledger.
func (r CreateMinuteRequest) ToDomainDraft() domain.Minute {
	return domain.Minute{
		CorrespondenceID: r.CorrespondenceID,
		ActionType:       domain.MinuteActionType(r.ActionType),
		MinuteText:       r.MinuteText,
		Direction:        domain.Direction(r.Direction),
		ActedBySecretary: r.ActedBySecretary,
		ActedByAssistant: r.ActedByAssistant,
		AssistantType:    domain.AssistantType(r.AssistantType),
		Mentions:         r.Mentions,
		SignaturePayload: r.SignaturePayload,
		FromOfficeID:     r.FromOfficeID,
		ToOfficeID:       r.ToOfficeID,
	}
}

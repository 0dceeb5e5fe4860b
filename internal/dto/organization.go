package dto

import "github.com/npadigital/correspondence_app/internal/core/domain"

// DirectorateResponse is one directorate on the wire.
type DirectorateResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Code                string `json:"code"`
	ExecutiveDirectorID string `json:"executive_director_id,omitempty"`
	IsActive            bool   `json:"is_active"`
}

// DivisionResponse is one division on the wire.
type DivisionResponse struct {
	ID               string `json:"id"`
	DirectorateID    string `json:"directorate_id"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	GeneralManagerID string `json:"general_manager_id,omitempty"`
	IsActive         bool   `json:"is_active"`
}

// DepartmentResponse is one department on the wire.
type DepartmentResponse struct {
	ID                 string `json:"id"`
	DivisionID         string `json:"division_id"`
	Name               string `json:"name"`
	Code               string `json:"code"`
	HeadOfDepartmentID string `json:"head_of_department_id,omitempty"`
	IsActive           bool   `json:"is_active"`
}

// OfficeResponse is one routing office on the wire.
type OfficeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	OfficeType    string `json:"office_type"`
	DirectorateID string `json:"directorate_id,omitempty"`
	DivisionID    string `json:"division_id,omitempty"`
	DepartmentID  string `json:"department_id,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// OfficeMemberResponse is one office posting on the wire.
type OfficeMemberResponse struct {
	ID        string `json:"id"`
	OfficeID  string `json:"office_id"`
	UserID    string `json:"user_id"`
	IsPrimary bool   `json:"is_primary"`
	IsActive  bool   `json:"is_active"`
}

// ToDirectorateResponse converts a domain directorate.
func ToDirectorateResponse(d domain.Directorate) DirectorateResponse {
	return DirectorateResponse{
		ID:                  d.DirectorateID,
		Name:                d.Name,
		Code:                d.Code,
		ExecutiveDirectorID: d.ExecutiveDirectorID,
		IsActive:            d.IsActive,
	}
}

// ToDivisionResponse converts a domain division.
func ToDivisionResponse(d domain.Division) DivisionResponse {
	return DivisionResponse{
		ID:               d.DivisionID,
		DirectorateID:    d.DirectorateID,
		Name:             d.Name,
		Code:             d.Code,
		GeneralManagerID: d.GeneralManagerID,
		IsActive:         d.IsActive,
	}
}

// ToDepartmentResponse converts a domain department.
func ToDepartmentResponse(d domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:                 d.DepartmentID,
		DivisionID:         d.DivisionID,
		Name:               d.Name,
		Code:               d.Code,
		HeadOfDepartmentID: d.HeadOfDepartmentID,
		IsActive:           d.IsActive,
	}
}

// ToOfficeResponse converts a domain office.
func ToOfficeResponse(o domain.Office) OfficeResponse {
	return OfficeResponse{
		ID:            o.OfficeID,
		Name:          o.Name,
		Code:          o.Code,
		OfficeType:    string(o.OfficeType),
		DirectorateID: o.DirectorateID,
		DivisionID:    o.DivisionID,
		DepartmentID:  o.DepartmentID,
		IsActive:      o.IsActive,
	}
}

// ToOfficeMemberResponse converts a domain office membership.
func ToOfficeMemberResponse(m domain.OfficeMembership) OfficeMemberResponse {
	return OfficeMemberResponse{
		ID:        m.MembershipID,
		OfficeID:  m.OfficeID,
		UserID:    m.UserID,
		IsPrimary: m.IsPrimary,
		IsActive:  m.IsActive,
	}
}

package models

import "database/sql"

// Directorate is the DB representation of a directorate.
type Directorate struct {
	DirectorateID       string         `db:"directorate_id"`
	Name                string         `db:"name"`
	Code                string         `db:"code"`
	ExecutiveDirectorID sql.NullString `db:"executive_director_id"`
	IsActive            bool           `db:"is_active"`
}

// Division is the DB representation of a division.
type Division struct {
	DivisionID       string         `db:"division_id"`
	DirectorateID    string         `db:"directorate_id"`
	Name             string         `db:"name"`
	Code             string         `db:"code"`
	GeneralManagerID sql.NullString `db:"general_manager_id"`
	IsActive         bool           `db:"is_active"`
}

// Department is the DB representation of a department.
type Department struct {
	DepartmentID       string         `db:"department_id"`
	DivisionID         string         `db:"division_id"`
	Name               string         `db:"name"`
	Code               string         `db:"code"`
	HeadOfDepartmentID sql.NullString `db:"head_of_department_id"`
	IsActive           bool           `db:"is_active"`
}

// Office is the DB representation of a routing office.
type Office struct {
	OfficeID      string         `db:"office_id"`
	Name          string         `db:"name"`
	Code          string         `db:"code"`
	OfficeType    string         `db:"office_type"`
	DirectorateID sql.NullString `db:"directorate_id"`
	DivisionID    sql.NullString `db:"division_id"`
	DepartmentID  sql.NullString `db:"department_id"`
	IsActive      bool           `db:"is_active"`
}

// OfficeMembership is the DB representation of a user's office posting.
type OfficeMembership struct {
	MembershipID string `db:"membership_id"`
	OfficeID     string `db:"office_id"`
	UserID       string `db:"user_id"`
	IsPrimary    bool   `db:"is_primary"`
	IsActive     bool   `db:"is_active"`
}

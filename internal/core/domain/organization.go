package domain

// Directorate is the top-level organizational unit, led by an executive director.
type Directorate struct {
	DirectorateID       string `json:"directorateID"`
	Name                string `json:"name"`
	Code                string `json:"code"`
	ExecutiveDirectorID string `json:"executiveDirectorID"`
	IsActive            bool   `json:"isActive"`
}

// Division belongs to a directorate and is led by a general manager.
type Division struct {
	DivisionID       string `json:"divisionID"`
	DirectorateID    string `json:"directorateID"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	GeneralManagerID string `json:"generalManagerID"`
	IsActive         bool   `json:"isActive"`
}

// Department belongs to a division.
type Department struct {
	DepartmentID       string `json:"departmentID"`
	DivisionID         string `json:"divisionID"`
	Name               string `json:"name"`
	Code               string `json:"code"`
	HeadOfDepartmentID string `json:"headOfDepartmentID"`
	IsActive           bool   `json:"isActive"`
}

// OfficeType classifies a routing office. Offices are routing targets and
// are not necessarily one-to-one with departments.
type OfficeType string

const (
	OfficeManagingDirector  OfficeType = "md"
	OfficeExecutiveDirector OfficeType = "ed"
	OfficeGeneralManager    OfficeType = "gm"
	OfficeDirectorate       OfficeType = "directorate"
	OfficeDivision          OfficeType = "division"
	OfficeDepartment        OfficeType = "department"
	OfficeRegistry          OfficeType = "registry"
	OfficeUnit              OfficeType = "unit"
	OfficeCustom            OfficeType = "custom"
)

// Office is a routing target in the correspondence workflow.
type Office struct {
	OfficeID      string     `json:"officeID"`
	Name          string     `json:"name"`
	Code          string     `json:"code"`
	OfficeType    OfficeType `json:"officeType"`
	DirectorateID string     `json:"directorateID,omitempty"`
	DivisionID    string     `json:"divisionID,omitempty"`
	DepartmentID  string     `json:"departmentID,omitempty"`
	IsActive      bool       `json:"isActive"`
}

// OfficeMembership places a user in an office.
type OfficeMembership struct {
	MembershipID string `json:"membershipID"`
	OfficeID     string `json:"officeID"`
	UserID       string `json:"userID"`
	IsPrimary    bool   `json:"isPrimary"`
	IsActive     bool   `json:"isActive"`
}

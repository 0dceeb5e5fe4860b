package dto

import "github.com/npadigital/correspondence_app/internal/core/domain"

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	Username             string   `json:"username" binding:"required"`
	Password             string   `json:"password" binding:"required,min=8"`
	Name                 string   `json:"name" binding:"required"`
	GradeLevel           string   `json:"grade_level"`
	PrimaryOfficeID      string   `json:"primary_office_id"`
	AllowedArchiveLevels []string `json:"allowed_archive_levels" binding:"omitempty,dive,oneof=department division directorate"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero values.
type UpdateUserRequest struct {
	Name                 *string  `json:"name"`
	GradeLevel           *string  `json:"grade_level"`
	PrimaryOfficeID      *string  `json:"primary_office_id"`
	AllowedArchiveLevels []string `json:"allowed_archive_levels" binding:"omitempty,dive,oneof=department division directorate"`
}

// UserResponse is one user on the wire; never includes credentials.
type UserResponse struct {
	ID                   string   `json:"id"`
	Username             string   `json:"username"`
	Name                 string   `json:"name"`
	GradeLevel           string   `json:"grade_level"`
	IsActive             bool     `json:"is_active"`
	PrimaryOfficeID      string   `json:"primary_office_id,omitempty"`
	AllowedArchiveLevels []string `json:"allowed_archive_levels"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain user to its wire representation.
func ToUserResponse(u *domain.User) UserResponse {
	levels := make([]string, len(u.AllowedArchiveLevels))
	for i, l := range u.AllowedArchiveLevels {
		levels[i] = string(l)
	}
	return UserResponse{
		ID:                   u.UserID,
		Username:             u.Username,
		Name:                 u.Name,
		GradeLevel:           u.GradeLevel,
		IsActive:             u.IsActive,
		PrimaryOfficeID:      u.PrimaryOfficeID,
		AllowedArchiveLevels: levels,
	}
}

// ToListUserResponse converts a slice of domain users.
func ToListUserResponse(users []domain.User) ListUsersResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: res}
}

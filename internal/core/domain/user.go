package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary key (UUID)
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	GradeLevel   string `json:"gradeLevel"`
	IsActive     bool   `json:"isActive"`

	// AllowedArchiveLevels is the per-role capability set assigned upstream;
	// it gates which archive tiers the user may even be considered for.
	AllowedArchiveLevels []ArchiveLevel `json:"allowedArchiveLevels"`

	// PrimaryOfficeID anchors the user in the organizational hierarchy.
	PrimaryOfficeID string `json:"primaryOfficeID"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Refresh token fields (hash only, never the raw token).
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// MayUseArchiveLevel reports whether the user's capability set includes level.
func (u User) MayUseArchiveLevel(level ArchiveLevel) bool {
	for _, l := range u.AllowedArchiveLevels {
		if l == level {
			return true
		}
	}
	return false
}

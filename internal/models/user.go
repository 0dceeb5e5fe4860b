package models

import (
	"database/sql"
	"time"
)

// User represents a user row, including authentication columns.
type User struct {
	UserID               string         `db:"user_id"`
	Username             string         `db:"username"`
	PasswordHash         string         `db:"password_hash"`
	Name                 string         `db:"name"`
	GradeLevel           string         `db:"grade_level"`
	IsActive             bool           `db:"is_active"`
	AllowedArchiveLevels []string       `db:"allowed_archive_levels"`
	PrimaryOfficeID      sql.NullString `db:"primary_office_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh token columns; only the hash is stored.
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}

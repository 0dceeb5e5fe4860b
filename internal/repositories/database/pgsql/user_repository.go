package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	portsrepo "github.com/npadigital/correspondence_app/internal/core/ports/repositories"
	"github.com/npadigital/correspondence_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements the facade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func toDomainUser(m models.User) domain.User {
	levels := make([]domain.ArchiveLevel, len(m.AllowedArchiveLevels))
	for i, l := range m.AllowedArchiveLevels {
		levels[i] = domain.ArchiveLevel(l)
	}
	return domain.User{
		UserID:               m.UserID,
		Username:             m.Username,
		PasswordHash:         m.PasswordHash,
		Name:                 m.Name,
		GradeLevel:           m.GradeLevel,
		IsActive:             m.IsActive,
		AllowedArchiveLevels: levels,
		PrimaryOfficeID:      m.PrimaryOfficeID.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt:              m.DeletedAt,
		RefreshTokenHash:       m.RefreshTokenHash.String,
		RefreshTokenExpiryTime: fromNullTime(m.RefreshTokenExpiryTime),
	}
}

const userColumns = `user_id, username, password_hash, name, grade_level, is_active, allowed_archive_levels, primary_office_id, created_at, created_by, last_updated_at, last_updated_by, deleted_at, refresh_token_hash, refresh_token_expiry_time`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&m.GradeLevel,
		&m.IsActive,
		&m.AllowedArchiveLevels,
		&m.PrimaryOfficeID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
	)
	return m, err
}

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	levels := make([]string, len(user.AllowedArchiveLevels))
	for i, l := range user.AllowedArchiveLevels {
		levels[i] = string(l)
	}

	query := `
		INSERT INTO users (user_id, username, password_hash, name, grade_level, is_active, allowed_archive_levels, primary_office_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.PasswordHash,
		user.Name,
		user.GradeLevel,
		user.IsActive,
		levels,
		nullString(user.PrimaryOfficeID),
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: username %s already exists", apperrors.ErrDuplicate, user.Username)
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by ID, excluding soft-deleted rows.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	user := toDomainUser(m)
	return &user, nil
}

// FindUserByUsername retrieves a user by username, excluding soft-deleted rows.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted_at IS NULL;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username %s: %w", username, err)
	}
	user := toDomainUser(m)
	return &user, nil
}

// FindUsers retrieves a paginated list of users.
func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL ORDER BY created_at DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, toDomainUser(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// UpdateUser updates an existing user's details.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	levels := make([]string, len(user.AllowedArchiveLevels))
	for i, l := range user.AllowedArchiveLevels {
		levels[i] = string(l)
	}

	query := `
		UPDATE users
		SET name = $2, grade_level = $3, is_active = $4, allowed_archive_levels = $5,
			primary_office_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.GradeLevel,
		user.IsActive,
		levels,
		nullString(user.PrimaryOfficeID),
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	query := `UPDATE users SET refresh_token_hash = $2, refresh_token_expiry_time = $3 WHERE user_id = $1 AND deleted_at IS NULL;`

	tag, err := r.Pool.Exec(ctx, query, userID, refreshTokenHash, expiryTime)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClearRefreshToken removes a user's stored refresh token.
func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL WHERE user_id = $1 AND deleted_at IS NULL;`

	tag, err := r.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkUserDeleted marks a user as deleted (soft delete).
func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE users
		SET deleted_at = $2, is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark user %s deleted: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
